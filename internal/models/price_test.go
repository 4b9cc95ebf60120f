package models_test

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"

	"adboard/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		currency string
		amount   int64
		code     string
		str      string
	}{
		{name: "integer", in: "12", currency: "USD", amount: 1200, code: "USD", str: "12.00"},
		{name: "decimal", in: "12.5", currency: "eur", amount: 1250, code: "EUR", str: "12.50"},
		{name: "comma", in: "1 000,99", currency: "USD", amount: 100099, code: "USD", str: "1000.99"},
		{name: "rounded", in: "0.125", currency: "USD", amount: 13, code: "USD", str: "0.13"},
		{name: "zero decimal currency", in: "1500", currency: "JPY", amount: 1500, code: "JPY", str: "1500"},
		{name: "default currency", in: "3", currency: "", amount: 300, code: models.MainCurrency, str: "3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			p, err := models.ParsePrice(tt.in, tt.currency)
			c.Assert(err, qt.IsNil)
			c.Assert(p.Amount, qt.Equals, tt.amount)
			c.Assert(p.Currency, qt.Equals, tt.code)
			c.Assert(p.String(), qt.Equals, tt.str)
		})
	}
}

func TestParsePriceErrors(t *testing.T) {
	c := qt.New(t)

	_, err := models.ParsePrice("abc", "USD")
	c.Assert(err, qt.ErrorMatches, `parse price "abc": .*`)

	_, err = models.ParsePrice("-1", "USD")
	c.Assert(err, qt.ErrorIs, models.ErrNegativePrice)

	_, err = models.ParsePrice("1", "ZZZZ")
	c.Assert(err, qt.ErrorMatches, `currency "ZZZZ": .*`)
	c.Assert(err, qt.ErrorIs, models.ErrUnknownCurrency)

	for _, in := range []string{"99999999999999999999", "92233720368547758.08", "1e30"} {
		_, err = models.ParsePrice(in, "USD")
		c.Assert(err, qt.ErrorIs, models.ErrPriceTooLarge, qt.Commentf("input %s", in))
	}

	p, err := models.ParsePrice("92233720368547758.07", "USD")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Amount, qt.Equals, int64(math.MaxInt64))
}

func TestNewPrice(t *testing.T) {
	c := qt.New(t)

	p, err := models.NewPrice(999, "usd")
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, models.Price{Amount: 999, Currency: "USD"})

	_, err = models.NewPrice(-5, "USD")
	c.Assert(err, qt.ErrorIs, models.ErrNegativePrice)
}

func TestPriceDisplay(t *testing.T) {
	c := qt.New(t)

	c.Assert(models.Price{}.Display(), qt.Equals, "")

	p := models.Price{Amount: 1250, Currency: "USD"}
	c.Assert(p.Display(), qt.Contains, "$")
	c.Assert(p.Display(), qt.Contains, "12.50")
}
