package models_test

import (
	"errors"
	"mime/multipart"
	"testing"

	qt "github.com/frankban/quicktest"

	"adboard/internal/models"
)

type fakeStore struct {
	files     map[string]bool
	uploadErr error
	next      string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string]bool{}}
}

func (s *fakeStore) Upload(*multipart.FileHeader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.files[s.next] = true
	return s.next, nil
}

func (s *fakeStore) Remove(name string) error {
	delete(s.files, name)
	return nil
}

func TestProductUploadImage(t *testing.T) {
	c := qt.New(t)
	store := newFakeStore()
	store.next = "a.png"

	var p models.Product
	c.Assert(p.HasImage(), qt.IsFalse)

	err := p.UploadImage(&multipart.FileHeader{Filename: "photo.png"}, store)
	c.Assert(err, qt.IsNil)
	c.Assert(p.HasImage(), qt.IsTrue)
	c.Assert(*p.ImageFilename, qt.Equals, "a.png")
	c.Assert(store.files["a.png"], qt.IsTrue)
}

func TestProductUploadImageFailureKeepsFilename(t *testing.T) {
	c := qt.New(t)
	store := newFakeStore()
	store.uploadErr = errors.New("disk full")

	old := "old.png"
	p := models.Product{ImageFilename: &old}

	err := p.UploadImage(&multipart.FileHeader{}, store)
	c.Assert(err, qt.ErrorMatches, "upload image: disk full")
	c.Assert(*p.ImageFilename, qt.Equals, "old.png")
}

func TestProductDeleteImage(t *testing.T) {
	c := qt.New(t)
	store := newFakeStore()
	store.files["x.jpg"] = true

	name := "x.jpg"
	p := models.Product{ImageFilename: &name}

	c.Assert(p.DeleteImage(store), qt.IsNil)
	c.Assert(p.ImageFilename, qt.IsNil)
	c.Assert(store.files, qt.HasLen, 0)

	// no image is a no-op
	c.Assert(p.DeleteImage(store), qt.IsNil)
}

func TestProductPriceAndCategory(t *testing.T) {
	c := qt.New(t)

	var p models.Product
	c.Assert(p.Currency(), qt.Equals, models.MainCurrency)
	c.Assert(p.DisplayPrice(), qt.Equals, "")
	c.Assert(p.StatusText(), qt.Equals, "Pending")

	c.Assert(p.SetPrice(4200, "EUR"), qt.IsNil)
	c.Assert(p.Currency(), qt.Equals, "EUR")
	c.Assert(p.Price.String(), qt.Equals, "42.00")

	cat := &models.Category{Name: "Vehicles"}
	cat.ID = 3
	p.SetCategory(cat)
	c.Assert(*p.CategoryID, qt.Equals, uint(3))
	p.SetCategory(nil)
	c.Assert(p.CategoryID, qt.IsNil)
}

func TestUserPasswordAndOwnership(t *testing.T) {
	c := qt.New(t)

	hash, err := models.HashPassword("s3cret")
	c.Assert(err, qt.IsNil)
	c.Assert(models.CheckPassword(hash, "s3cret"), qt.IsTrue)
	c.Assert(models.CheckPassword(hash, "nope"), qt.IsFalse)

	u := &models.User{Role: models.RoleAdmin}
	u.ID = 9
	c.Assert(u.IsAdmin(), qt.IsTrue)

	var p models.Product
	u.AddProduct(&p)
	c.Assert(p.UserID, qt.Equals, uint(9))
}
