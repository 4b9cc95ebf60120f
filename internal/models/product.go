package models

import (
	"fmt"
	"mime/multipart"
)

// ImageStore keeps uploaded product images on backing storage.
type ImageStore interface {
	Upload(file *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// Product is the products table: one classified ad.
type Product struct {
	Base
	Name             string    `gorm:"size:128;not null"`
	ShortDescription string    `gorm:"type:text;not null"`
	Price            Price     `gorm:"embedded;embeddedPrefix:price_"`
	Phone            string    `gorm:"size:16;not null"`
	Status           Status    `gorm:"type:smallint;not null;default:0"`
	UserID           uint      `gorm:"index;not null"`
	User             *User     `gorm:"foreignKey:UserID"`
	CategoryID       *uint     `gorm:"index"`
	Category         *Category `gorm:"foreignKey:CategoryID"`
	ImageFilename    *string   `gorm:"size:255"`
}

// SetPrice sets the price from an amount in minor units.
func (p *Product) SetPrice(amount int64, code string) error {
	price, err := NewPrice(amount, code)
	if err != nil {
		return err
	}
	p.Price = price
	return nil
}

// Currency returns the currency of the price or MainCurrency when none is set.
func (p *Product) Currency() string {
	return p.Price.CurrencyCode()
}

func (p *Product) DisplayPrice() string {
	return p.Price.Display()
}

func (p *Product) StatusText() string {
	return p.Status.String()
}

func (p *Product) SetCategory(c *Category) {
	p.Category = c
	if c == nil {
		p.CategoryID = nil
		return
	}
	id := c.ID
	p.CategoryID = &id
}

func (p *Product) HasImage() bool {
	return p.ImageFilename != nil && *p.ImageFilename != ""
}

// UploadImage stores file and points the product at the stored name.
// The previous image, if any, is left for the caller to release.
func (p *Product) UploadImage(file *multipart.FileHeader, store ImageStore) error {
	name, err := store.Upload(file)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	p.ImageFilename = &name
	return nil
}

// DetachImage clears the image reference and returns the old file name.
func (p *Product) DetachImage() (string, bool) {
	if !p.HasImage() {
		p.ImageFilename = nil
		return "", false
	}
	name := *p.ImageFilename
	p.ImageFilename = nil
	return name, true
}

// DeleteImage clears the image reference, then removes the file from store.
func (p *Product) DeleteImage(store ImageStore) error {
	name, ok := p.DetachImage()
	if !ok {
		return nil
	}
	if err := store.Remove(name); err != nil {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}
