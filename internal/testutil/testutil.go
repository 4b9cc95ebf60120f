// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"gorm.io/gorm"

	"adboard/internal/db"
	"adboard/internal/logging"
	"adboard/internal/models"
)

// NewDB opens a migrated in-memory sqlite database closed at test cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	c := qt.New(t)

	gdb, err := db.Open("sqlite", ":memory:", logging.Discard())
	c.Assert(err, qt.IsNil)
	c.Assert(db.Migrate(gdb), qt.IsNil)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// CreateUser inserts a user with the given email and password.
func CreateUser(t testing.TB, gdb *gorm.DB, email, password string) *models.User {
	t.Helper()
	c := qt.New(t)

	hash, err := models.HashPassword(password)
	c.Assert(err, qt.IsNil)
	u := &models.User{Email: email, PasswordHash: hash, Role: models.RoleUser}
	c.Assert(gdb.Create(u).Error, qt.IsNil)
	return u
}

// CreateProduct inserts a pending product owned by owner.
func CreateProduct(t testing.TB, gdb *gorm.DB, owner *models.User, name string) *models.Product {
	t.Helper()
	c := qt.New(t)

	p := &models.Product{
		Name:             name,
		ShortDescription: name + " in good condition",
		Phone:            "+1 555 0100",
	}
	c.Assert(p.SetPrice(1000, "USD"), qt.IsNil)
	owner.AddProduct(p)
	c.Assert(gdb.Omit("User", "Category").Create(p).Error, qt.IsNil)
	return p
}
