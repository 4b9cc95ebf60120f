package models

// Category groups listings. Deleting a category leaves its products uncategorized.
type Category struct {
	Base
	Name     string    `gorm:"uniqueIndex;size:64;not null"`
	Products []Product `gorm:"constraint:OnDelete:SET NULL"`
}
