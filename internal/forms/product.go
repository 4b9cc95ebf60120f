package forms

import (
	"errors"
	"mime/multipart"
	"strings"

	"adboard/internal/models"
)

// Product is the add/edit listing form. The image arrives as a separate
// multipart file and is attached by the handler.
type Product struct {
	Name             string `form:"name" binding:"required,max=128"`
	ShortDescription string `form:"shortDescription" binding:"required"`
	Price            string `form:"price" binding:"required,max=20,price"`
	Currency         string `form:"currency" binding:"omitempty,iso4217"`
	Phone            string `form:"phone" binding:"required,max=24,phone"`
	CategoryID       uint   `form:"category"`
	IsRemoveImage    bool   `form:"isRemoveImage"`

	Image *multipart.FileHeader `form:"-"`
}

// NewProduct fills the form from an existing product for editing.
func NewProduct(p *models.Product) Product {
	f := Product{
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Currency:         p.Currency(),
		Phone:            p.Phone,
	}
	if !p.Price.IsZero() {
		f.Price = p.Price.String()
	}
	if p.CategoryID != nil {
		f.CategoryID = *p.CategoryID
	}
	return f
}

// Apply copies the form values onto p. The category is resolved by the
// caller and passed in; a nil category clears it. Errors from the price go
// through ApplyError to find the field they belong to.
func (f Product) Apply(p *models.Product, category *models.Category, defaultCurrency string) error {
	code := strings.ToUpper(strings.TrimSpace(f.Currency))
	if code == "" {
		code = defaultCurrency
		if !p.Price.IsZero() {
			code = p.Price.Currency
		}
	}
	price, err := models.ParsePrice(f.Price, code)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(f.Name)
	p.ShortDescription = strings.TrimSpace(f.ShortDescription)
	p.Phone = NormalizePhone(f.Phone)
	p.Price = price
	p.SetCategory(category)
	return nil
}

// ApplyError returns the form field and message for an error from Apply.
func ApplyError(err error) (field, msg string) {
	if errors.Is(err, models.ErrUnknownCurrency) {
		return "currency", "This value is not a valid currency."
	}
	if errors.Is(err, models.ErrPriceTooLarge) {
		return "price", "This value is too large."
	}
	return "price", "This value is not a valid price."
}
