// Package currency formats monetary amounts for a user's preferred currency.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"INR": "₹",
	"CNY": "¥",
	"BRL": "R$",
	"MXN": "Mex$",
}

// Formatter renders amounts in a single currency. The zero value is not
// usable; build one with NewFormatter.
type Formatter struct {
	code   string
	symbol string
	scale  int32
}

// NewFormatter validates an ISO 4217 code and returns a Formatter for it.
func NewFormatter(code string) (Formatter, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return Formatter{}, fmt.Errorf("parse currency %q: %w", code, err)
	}

	iso := unit.String()
	scale, _ := currency.Standard.Rounding(unit)

	symbol, ok := symbols[iso]
	if !ok {
		symbol = iso + " "
	}

	return Formatter{code: iso, symbol: symbol, scale: int32(scale)}, nil
}

// MustFormatter is NewFormatter for codes known to be valid.
func MustFormatter(code string) Formatter {
	f, err := NewFormatter(code)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code.
func (f Formatter) Code() string {
	return f.code
}

// Format renders amount as symbol plus digit-grouped value, e.g. "$1,234.50".
// Only the whole part goes through the printer; the fraction is taken from the
// decimal so no digits pass through a float.
func (f Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	rounded := amount.Round(f.scale)
	_, fracPart, hasFrac := strings.Cut(rounded.StringFixed(f.scale), ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.symbol)
	b.WriteString(message.NewPrinter(language.English).Sprintf("%v", number.Decimal(rounded.IntPart())))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
