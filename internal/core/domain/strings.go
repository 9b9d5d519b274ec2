package domain

import "strings"

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSKU trims and uppercases a SKU.
func NormalizeSKU(sku string) string {
	return upper(sku)
}
