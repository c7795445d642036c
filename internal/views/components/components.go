// Package components holds small reusable view fragments shared by
// the calculator pages.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"hppcalc/internal/pricing"
)

// StatusBadge renders the connection indicator. The state string maps
// directly onto a CSS class, so callers pass the sync status verbatim.
func StatusBadge(state, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="connection-status" class="status status-`+templ.EscapeString(state)+`">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(message)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// PriceRow renders one labelled rupiah amount of the result panel.
func PriceRow(label string, amount float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="price-row"><span class="price-label">`+templ.EscapeString(label)+`</span><span class="price-value">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(pricing.FormatRupiah(amount))); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</span></div>")
		return err
	})
}

// Flash renders a one-shot notification banner, or nothing when the
// message is empty.
func Flash(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := io.WriteString(w, `<div class="flash">`+templ.EscapeString(message)+"</div>")
		return err
	})
}
