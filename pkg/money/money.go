// Package money formatea importes en pesos argentinos para la vista.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var tag = language.MustParse("es-AR")

// Format devuelve el importe con separadores es-AR y dos decimales: "$ 12.345,50".
func Format(d decimal.Decimal) string {
	return "$ " + Number(d)
}

// Number devuelve el importe sin símbolo: "12.345,50".
func Number(d decimal.Decimal) string {
	p := message.NewPrinter(tag)
	f := d.Round(2).InexactFloat64()
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Int formatea un entero con separador de miles ("1.500").
func Int(n int) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(n))
}
