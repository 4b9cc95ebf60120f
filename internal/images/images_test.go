package images_test

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"adboard/internal/images"
	"adboard/internal/logging"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// fileHeader builds a multipart file header the way a browser upload would.
func fileHeader(c *qt.C, filename string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("imageFile", filename)
	c.Assert(err, qt.IsNil)
	_, err = fw.Write(content)
	c.Assert(err, qt.IsNil)
	c.Assert(mw.Close(), qt.IsNil)

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["imageFile"][0]
}

func TestUploadAndRemove(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	store, err := images.New(filepath.Join(dir, "uploads"), "/uploads/", logging.Discard())
	c.Assert(err, qt.IsNil)

	name, err := store.Upload(fileHeader(c, "photo.PNG", pngHeader))
	c.Assert(err, qt.IsNil)
	c.Assert(strings.HasSuffix(name, ".png"), qt.IsTrue)
	c.Assert(store.Exists(name), qt.IsTrue)
	c.Assert(store.URL(name), qt.Equals, "/uploads/"+name)

	stored, err := os.ReadFile(filepath.Join(store.Dir(), name))
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.DeepEquals, pngHeader)

	c.Assert(store.Remove(name), qt.IsNil)
	c.Assert(store.Exists(name), qt.IsFalse)
	// removing twice is fine
	c.Assert(store.Remove(name), qt.IsNil)
}

func TestUploadNamesAreUnique(t *testing.T) {
	c := qt.New(t)
	store, err := images.New(c.TempDir(), "/uploads", logging.Discard())
	c.Assert(err, qt.IsNil)

	a, err := store.Upload(fileHeader(c, "a.png", pngHeader))
	c.Assert(err, qt.IsNil)
	b, err := store.Upload(fileHeader(c, "a.png", pngHeader))
	c.Assert(err, qt.IsNil)
	c.Assert(a, qt.Not(qt.Equals), b)
}

func TestUploadRejectsNonImages(t *testing.T) {
	c := qt.New(t)
	store, err := images.New(c.TempDir(), "/uploads", logging.Discard())
	c.Assert(err, qt.IsNil)

	// the extension lies, the content decides
	_, err = store.Upload(fileHeader(c, "evil.png", []byte("#!/bin/sh\necho hi\n")))
	c.Assert(err, qt.ErrorIs, images.ErrUnsupportedType)

	entries, err := os.ReadDir(store.Dir())
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 0)
}

func TestUploadRejectsLargeFiles(t *testing.T) {
	c := qt.New(t)
	store, err := images.New(c.TempDir(), "/uploads", logging.Discard())
	c.Assert(err, qt.IsNil)

	fh := fileHeader(c, "big.png", pngHeader)
	fh.Size = images.MaxSize + 1
	_, err = store.Upload(fh)
	c.Assert(err, qt.ErrorIs, images.ErrTooLarge)
}

func TestRemoveRejectsPaths(t *testing.T) {
	c := qt.New(t)
	store, err := images.New(c.TempDir(), "/uploads", logging.Discard())
	c.Assert(err, qt.IsNil)

	for _, name := range []string{"", "../etc/passwd", "a/b.png", ".hidden"} {
		c.Assert(store.Remove(name), qt.ErrorIs, images.ErrInvalidName, qt.Commentf("name %q", name))
		c.Assert(store.Exists(name), qt.IsFalse)
	}
}
