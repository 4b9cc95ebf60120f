package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adboard/internal/apperr"
	"adboard/internal/forms"
	"adboard/internal/images"
	"adboard/internal/models"
)

const (
	userProductsPath = "/user/products"
	addProductPath   = "/user/product/add"
)

func (s *Server) userProducts(c *gin.Context) {
	u := currentUser(c)
	items, err := s.products.ListByOwner(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "user_products.tmpl", ViewData{
		"Products":         items,
		"IsUserExperience": true,
	})
}

func (s *Server) showAddProduct(c *gin.Context) {
	s.renderProductForm(c, http.StatusOK, &models.Product{}, forms.Product{Currency: s.cfg.DefaultCurrency}, nil)
}

func (s *Server) addProduct(c *gin.Context) {
	p := &models.Product{Status: models.StatusPending}
	currentUser(c).AddProduct(p)
	if !s.submitProduct(c, p) {
		return
	}
	s.addFlash(c, "Ad added successfully")
	c.Redirect(http.StatusSeeOther, userProductsPath)
}

// editProduct serves both the edit form and its submission. Products the
// current user does not own send them to the add form.
func (s *Server) editProduct(c *gin.Context) {
	p, err := s.ownedProduct(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if p == nil {
		c.Redirect(http.StatusSeeOther, addProductPath)
		return
	}
	if c.Request.Method == http.MethodGet {
		s.renderProductForm(c, http.StatusOK, p, forms.NewProduct(p), nil)
		return
	}
	if !s.submitProduct(c, p) {
		return
	}
	s.addFlash(c, "Ad edited successfully")
	c.Redirect(http.StatusSeeOther, userProductsPath)
}

// deleteProduct removes an owned product. The answer is the same whether
// or not anything was removed; the page reloads to show the result.
func (s *Server) deleteProduct(c *gin.Context) {
	p, err := s.ownedProduct(c, c.Query("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if p != nil {
		if err := s.products.Remove(c.Request.Context(), p); err != nil {
			fail(c, err)
			return
		}
		if err := p.DeleteImage(s.images); err != nil {
			s.log.WithError(err).Warnf("Product %d deleted but its image was kept", p.ID)
		}
		s.addFlash(c, "Ad deleted successfully")
	}
	c.JSON(http.StatusOK, gin.H{"reloadPage": true})
}

// ownedProduct finds the product with the given id owned by the current
// user. Anonymous users, bad ids and foreign products all yield nil.
func (s *Server) ownedProduct(c *gin.Context, rawID string) (*models.Product, error) {
	u := currentUser(c)
	if u == nil {
		return nil, nil
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return nil, nil
	}
	p, err := s.products.FindOneByOwner(c.Request.Context(), uint(id), u.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// submitProduct binds the form onto p, stores a new image if one was sent
// and saves p. It reports whether p was saved; when it was not, a response
// has already been produced.
func (s *Server) submitProduct(c *gin.Context, p *models.Product) bool {
	ctx := c.Request.Context()

	var f forms.Product
	errs := forms.Bind(c, &f)
	file, err := c.FormFile("imageFile")
	switch {
	case err == nil:
		f.Image = file
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		errs.Add("imageFile", "The file could not be uploaded.")
	}

	var category *models.Category
	if f.CategoryID != 0 {
		category, err = s.categories.Find(ctx, f.CategoryID)
		if errors.Is(err, apperr.ErrNotFound) {
			errs.Add("category", "This value is not valid.")
		} else if err != nil {
			fail(c, err)
			return false
		}
	}
	if !errs.Any() {
		if err := f.Apply(p, category, s.cfg.DefaultCurrency); err != nil {
			errs.Add(forms.ApplyError(err))
		}
	}
	if errs.Any() {
		s.renderProductForm(c, http.StatusUnprocessableEntity, p, f, errs)
		return false
	}

	// the old image is released only after the new state is saved
	var released string
	if f.IsRemoveImage || f.Image != nil {
		released, _ = p.DetachImage()
	}
	if f.Image != nil {
		if err := p.UploadImage(f.Image, s.images); err != nil {
			if released != "" {
				p.ImageFilename = &released
			}
			if errors.Is(err, images.ErrUnsupportedType) || errors.Is(err, images.ErrTooLarge) {
				errs.Add("imageFile", imageErrorMessage(err))
				s.renderProductForm(c, http.StatusUnprocessableEntity, p, f, errs)
				return false
			}
			fail(c, err)
			return false
		}
	}

	if err := s.products.Add(ctx, p); err != nil {
		if f.Image != nil && p.HasImage() {
			_ = s.images.Remove(*p.ImageFilename)
		}
		fail(c, err)
		return false
	}
	if released != "" {
		if err := s.images.Remove(released); err != nil {
			s.log.WithError(err).Warnf("Could not remove replaced image %s", released)
		}
	}
	return true
}

func imageErrorMessage(err error) string {
	if errors.Is(err, images.ErrTooLarge) {
		return "The file is too large. Allowed maximum size is 5 MB."
	}
	return "Please upload a valid image (JPEG, PNG, WEBP or GIF)."
}

func (s *Server) renderProductForm(c *gin.Context, status int, p *models.Product, f forms.Product, errs forms.Errors) {
	cats, err := s.categories.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if errs == nil {
		errs = forms.Errors{}
	}
	tmpl := "product_add.tmpl"
	if p.ID != 0 {
		tmpl = "product_edit.tmpl"
	}
	s.render(c, status, tmpl, ViewData{
		"Product":    p,
		"Form":       f,
		"Errors":     errs,
		"Categories": cats,
		"Currencies": currencyOptions(f.Currency, p.Price.Currency),
	})
}
