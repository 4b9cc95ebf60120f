package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MainCurrency is used when a price is created without an explicit currency.
const MainCurrency = "USD"

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrPriceTooLarge   = errors.New("price is too large")
	ErrUnknownCurrency = errors.New("unknown currency")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// Price is a monetary value stored in minor units of an ISO 4217 currency.
// It is embedded into products as price_amount and price_currency.
type Price struct {
	Amount   int64  `gorm:"not null;default:0"`
	Currency string `gorm:"size:3;not null"`
}

// NewPrice builds a price from an amount in minor units.
func NewPrice(amount int64, code string) (Price, error) {
	unit, err := parseCurrency(code)
	if err != nil {
		return Price{}, err
	}
	if amount < 0 {
		return Price{}, ErrNegativePrice
	}
	return Price{Amount: amount, Currency: unit.String()}, nil
}

// ParsePrice reads a decimal amount in major units ("12.50" or "12,50")
// and rounds it to the precision of the currency.
func ParsePrice(v, code string) (Price, error) {
	unit, err := parseCurrency(code)
	if err != nil {
		return Price{}, err
	}
	v = strings.ReplaceAll(strings.TrimSpace(v), " ", "")
	v = strings.ReplaceAll(v, ",", ".")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", v, err)
	}
	if d.IsNegative() {
		return Price{}, ErrNegativePrice
	}
	scale := scaleOf(unit)
	minor := d.Round(scale).Shift(scale)
	if minor.GreaterThan(maxAmount) {
		return Price{}, ErrPriceTooLarge
	}
	return Price{Amount: minor.IntPart(), Currency: unit.String()}, nil
}

func (p Price) IsZero() bool {
	return p.Currency == ""
}

// CurrencyCode returns the price currency, falling back to MainCurrency.
func (p Price) CurrencyCode() string {
	if p.Currency == "" {
		return MainCurrency
	}
	return p.Currency
}

// Decimal returns the amount in major units.
func (p Price) Decimal() decimal.Decimal {
	unit, err := currency.ParseISO(p.CurrencyCode())
	if err != nil {
		return decimal.New(p.Amount, -2)
	}
	return decimal.New(p.Amount, -scaleOf(unit))
}

// String renders the amount in major units with the currency precision, e.g. "12.50".
func (p Price) String() string {
	unit, err := currency.ParseISO(p.CurrencyCode())
	if err != nil {
		return p.Decimal().StringFixed(2)
	}
	return p.Decimal().StringFixed(scaleOf(unit))
}

// Display renders the price with its currency symbol.
func (p Price) Display() string {
	if p.IsZero() {
		return ""
	}
	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return p.String() + " " + p.Currency
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprintf("%s %s", currency.Symbol(unit), p.String())
}

func parseCurrency(code string) (currency.Unit, error) {
	if strings.TrimSpace(code) == "" {
		code = MainCurrency
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency %q: %w: %w", code, ErrUnknownCurrency, err)
	}
	return unit, nil
}

func scaleOf(unit currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
