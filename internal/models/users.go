package models

import "golang.org/x/crypto/bcrypt"

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the users table. Removing a user removes their products.
type User struct {
	Base
	Email        string    `gorm:"uniqueIndex;size:180;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'user'"`
	Products     []Product `gorm:"constraint:OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AddProduct makes u the owner of p.
func (u *User) AddProduct(p *Product) {
	p.UserID = u.ID
}

// HashPassword turns a plain password into a bcrypt hash.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
