package currency

import "fmt"

// FormatCents renders an amount of cents as a decimal string with two
// places, e.g. 123456 -> "1234.56". Negative amounts keep their sign.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Format renders an amount of cents with a currency code prefix,
// e.g. (123456, "KES") -> "KES 1234.56".
func Format(cents int64, code string) string {
	if code == "" {
		return FormatCents(cents)
	}
	return code + " " + FormatCents(cents)
}

// ToCents converts a decimal amount to cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	if amount < 0 {
		return -int64(-amount*100 + 0.5)
	}
	return int64(amount*100 + 0.5)
}
