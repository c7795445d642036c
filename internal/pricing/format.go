package pricing

import (
	"math"
	"strconv"
	"strings"
)

// FormatRupiah renders a monetary amount the way the form shows it:
// "Rp 0" for zero or NaN, otherwise the amount rounded to the nearest
// whole rupiah with "." thousands grouping (id-ID convention). Several
// display decisions hinge on the zero-vs-nonzero distinction, so the
// zero form is exact, not just cosmetic.
func FormatRupiah(amount float64) string {
	if math.IsNaN(amount) || amount == 0 {
		return "Rp 0"
	}

	rounded := int64(math.Round(amount))
	if rounded == 0 {
		return "Rp 0"
	}

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	var b strings.Builder
	b.WriteString("Rp ")
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
