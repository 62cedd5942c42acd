package pdf

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells a rupee amount in the Indian numbering system
// (thousand, lakh, crore). Paise are expressed separately.
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg())
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	words := "Rupees " + spellIndian(rupees.IntPart())
	if paise > 0 {
		words += " and " + spellBelowHundred(paise) + " Paise"
	}
	return words + " Only"
}

func spellIndian(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string
	appendPart := func(value int64, label string) {
		if value > 0 {
			part := spellBelowHundred(value)
			if label != "" {
				part += " " + label
			}
			parts = append(parts, part)
		}
	}

	if n >= 10000000 {
		parts = append(parts, spellIndian(n/10000000)+" Crore")
		n %= 10000000
	}
	appendPart(n/100000, "Lakh")
	n %= 100000
	appendPart(n/1000, "Thousand")
	n %= 1000
	appendPart(n/100, "Hundred")
	n %= 100
	appendPart(n, "")

	return strings.Join(parts, " ")
}

func spellBelowHundred(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n%10 == 0:
		return tens[n/10]
	default:
		return tens[n/10] + " " + ones[n%10]
	}
}
