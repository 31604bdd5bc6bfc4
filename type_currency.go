package fundperf

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code of a currency with a price table in the workbook.
type Currency string

const (
	CLP Currency = "CLP"
	USD Currency = "USD"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CLP, USD}

// ParseCurrency returns the supported currency for code, case insensitive.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if money.GetCurrency(string(c)) == nil {
		return "", fmt.Errorf("%w %q: not an ISO 4217 code", ErrUnknownCurrency, code)
	}
	if c.Sheet() == "" {
		return "", fmt.Errorf("%w %q: no price sheet", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Sheet returns the name of the workbook sheet holding prices in that currency.
func (c Currency) Sheet() string {
	switch c {
	case CLP:
		return "Pesos"
	case USD:
		return "Dolares"
	default:
		return ""
	}
}

// Label returns a human name for the currency.
func (c Currency) Label() string {
	switch c {
	case CLP:
		return "Pesos Chilenos (CLP)"
	case USD:
		return "Dólares (USD)"
	default:
		return string(c)
	}
}

func (c Currency) String() string { return string(c) }

// Format formats a price in that currency, rounded to the currency's minor unit.
func (c Currency) Format(price float64) string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, string(c)).Currency()
	dec := decimal.NewFromFloat(price).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}
