package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders amounts the way the storefront displays them
// (es-CL, whole pesos).
type PriceFormatter struct {
	printer *message.Printer
}

func NewPriceFormatter() *PriceFormatter {
	return &PriceFormatter{printer: message.NewPrinter(language.MustParse("es-CL"))}
}

func (f *PriceFormatter) Format(amount float64) string {
	return f.printer.Sprintf("$%.0f", amount)
}
