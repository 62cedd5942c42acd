package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Rupees Zero Only"},
		{"5", "Rupees Five Only"},
		{"19", "Rupees Nineteen Only"},
		{"40", "Rupees Forty Only"},
		{"2360", "Rupees Two Thousand Three Hundred Sixty Only"},
		{"2411", "Rupees Two Thousand Four Hundred Eleven Only"},
		{"100000", "Rupees One Lakh Only"},
		{"12345678", "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{"1050.75", "Rupees One Thousand Fifty and Seventy Five Paise Only"},
	}

	for _, tc := range cases {
		got := AmountInWords(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.want, got, "amount %s", tc.amount)
	}
}
