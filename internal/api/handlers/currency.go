package handlers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var currencySymbols = map[string]string{
	"BDT": "৳",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"MYR": "RM",
	"SGD": "S$",
}

// CurrencySymbol символ валюты; для неизвестного кода - сам код с пробелом
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code + " "
}

// FormatPrice строка для отображения: "$20.00", "৳1500.00", "NOK 10.00"
func FormatPrice(amount decimal.Decimal, currency string) string {
	return CurrencySymbol(currency) + amount.StringFixed(domain.MoneyScale)
}

// ParseAmount разбирает сумму, уже отформатированную сервисом
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
