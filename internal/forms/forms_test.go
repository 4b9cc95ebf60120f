package forms_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"adboard/internal/forms"
	"adboard/internal/models"
)

func postContext(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestBindRegistration(t *testing.T) {
	forms.Register()

	tests := []struct {
		name   string
		values url.Values
		want   forms.Errors
	}{
		{
			name:   "valid",
			values: url.Values{"email": {"a@example.com"}, "plainPassword": {"secret1"}, "agreeTerms": {"1"}},
			want:   forms.Errors{},
		},
		{
			name:   "blank",
			values: url.Values{},
			want: forms.Errors{
				"email":         "This value should not be blank.",
				"plainPassword": "This value should not be blank.",
				"agreeTerms":    "You should agree to our terms.",
			},
		},
		{
			name:   "bad email and short password",
			values: url.Values{"email": {"nope"}, "plainPassword": {"abc"}, "agreeTerms": {"true"}},
			want: forms.Errors{
				"email":         "This value is not a valid email address.",
				"plainPassword": "This value is too short. It should have 6 characters or more.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			var f forms.Registration
			errs := forms.Bind(postContext(tt.values), &f)
			c.Assert(errs, qt.DeepEquals, tt.want)
		})
	}
}

func TestBindProduct(t *testing.T) {
	forms.Register()

	tests := []struct {
		name   string
		values url.Values
		want   forms.Errors
	}{
		{
			name: "valid",
			values: url.Values{
				"name": {"Bike"}, "shortDescription": {"Red"}, "price": {"120,50"},
				"currency": {"EUR"}, "phone": {"+1 (555) 010-0"}, "category": {"2"},
			},
			want: forms.Errors{},
		},
		{
			name: "country code with several digits",
			values: url.Values{
				"name": {"Bike"}, "shortDescription": {"Red"}, "price": {"10"},
				"phone": {"+380 50 123 45 67"},
			},
			want: forms.Errors{},
		},
		{
			name: "too many digits and oversized price",
			values: url.Values{
				"name": {"Bike"}, "shortDescription": {"Red"}, "price": {"92233720368547758.08"},
				"phone": {"+1234 567 890 123 456"},
			},
			want: forms.Errors{
				"price": "This value is not a valid price.",
				"phone": "This value is not a valid phone number.",
			},
		},
		{
			name: "price longer than the field",
			values: url.Values{
				"name": {"Bike"}, "shortDescription": {"Red"}, "price": {strings.Repeat("1", 21)},
				"phone": {"+1 555 0100"},
			},
			want: forms.Errors{
				"price": "This value is too long. It should have 20 characters or less.",
			},
		},
		{
			name: "invalid values",
			values: url.Values{
				"name": {strings.Repeat("x", 129)}, "shortDescription": {"Red"}, "price": {"cheap"},
				"currency": {"ABCD"}, "phone": {"call me"},
			},
			want: forms.Errors{
				"name":     "This value is too long. It should have 128 characters or less.",
				"price":    "This value is not a valid price.",
				"currency": "This value is not a valid currency.",
				"phone":    "This value is not a valid phone number.",
			},
		},
		{
			name:   "non numeric category",
			values: url.Values{"name": {"Bike"}, "category": {"cars"}},
			want:   forms.Errors{forms.FormKey: "The submitted data is invalid."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			var f forms.Product
			errs := forms.Bind(postContext(tt.values), &f)
			c.Assert(errs, qt.DeepEquals, tt.want)
		})
	}
}

func TestProductApply(t *testing.T) {
	c := qt.New(t)

	cat := &models.Category{Name: "Bikes"}
	cat.ID = 4
	f := forms.Product{
		Name:             " Bike ",
		ShortDescription: "Red bike",
		Price:            "120.5",
		Phone:            "555-0100",
		CategoryID:       4,
	}

	var p models.Product
	c.Assert(f.Apply(&p, cat, "EUR"), qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Bike")
	c.Assert(p.Price, qt.Equals, models.Price{Amount: 12050, Currency: "EUR"})
	c.Assert(*p.CategoryID, qt.Equals, uint(4))

	// existing products keep their currency when none is submitted
	f.Price = "99"
	c.Assert(f.Apply(&p, nil, "USD"), qt.IsNil)
	c.Assert(p.Price, qt.Equals, models.Price{Amount: 9900, Currency: "EUR"})
	c.Assert(p.CategoryID, qt.IsNil)

	c.Assert(p.Phone, qt.Equals, "5550100")

	back := forms.NewProduct(&p)
	c.Assert(back.Price, qt.Equals, "99.00")
	c.Assert(back.Currency, qt.Equals, "EUR")
	c.Assert(back.Name, qt.Equals, "Bike")
}

func TestApplyError(t *testing.T) {
	c := qt.New(t)

	var p models.Product
	err := forms.Product{Price: "10", Currency: "XYZ"}.Apply(&p, nil, "USD")
	c.Assert(err, qt.ErrorIs, models.ErrUnknownCurrency)
	field, msg := forms.ApplyError(err)
	c.Assert(field, qt.Equals, "currency")
	c.Assert(msg, qt.Equals, "This value is not a valid currency.")

	// fits in cents but not in the three decimals of the dinar
	err = forms.Product{Price: "9300000000000000", Currency: "KWD"}.Apply(&p, nil, "USD")
	c.Assert(err, qt.ErrorIs, models.ErrPriceTooLarge)
	field, msg = forms.ApplyError(err)
	c.Assert(field, qt.Equals, "price")
	c.Assert(msg, qt.Equals, "This value is too large.")

	field, _ = forms.ApplyError(models.ErrNegativePrice)
	c.Assert(field, qt.Equals, "price")
}
