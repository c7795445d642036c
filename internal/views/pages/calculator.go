// Package pages renders the calculator screens.
package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"hppcalc/internal/pricing"
	"hppcalc/internal/syncer"
	"hppcalc/internal/views/components"
	"hppcalc/models"
)

// Calculator renders the main screen: menu form, ingredient rows,
// percentage inputs, and the computed price panel. The form posts to
// the JSON API, so every input keeps its wire field name.
func Calculator(recipe models.Recipe, breakdown pricing.Breakdown, status syncer.Status, statusMessage, flash string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := components.StatusBadge(string(status), statusMessage).Render(ctx, w); err != nil {
			return err
		}
		if err := components.Flash(flash).Render(ctx, w); err != nil {
			return err
		}

		heading := "HPP Calculator"
		submit := "Simpan Menu"
		if recipe.EditMode() {
			heading = "Edit Menu"
			submit = "Update Menu"
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><form id="menu-form" method="post" action="/api/menus">`, templ.EscapeString(heading)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="hidden" name="menu_id" value="%s">`, templ.EscapeString(recipe.MenuID)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="text" name="menu_name" placeholder="Nama Menu" value="%s">`, templ.EscapeString(recipe.MenuName)); err != nil {
			return err
		}
		if err := categorySelect(w, recipe); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="text" name="brand" placeholder="Brand" value="%s">`, templ.EscapeString(recipe.Brand)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<fieldset id="ingredients"><legend>Bahan</legend>`); err != nil {
			return err
		}
		for i, row := range recipe.Ingredients {
			if err := ingredientRow(w, i, row); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</fieldset>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<input type="text" name="packaging_cost" placeholder="Total Packaging" value="%s">`, templ.EscapeString(recipe.Packaging.Cost)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="text" name="target_qty" placeholder="Jumlah Produksi" value="%s">`, templ.EscapeString(recipe.TargetQty)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="number" name="profit_margin" value="%s">`, formatPct(recipe.ProfitMarginPct)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="number" name="platform_fee_percent" value="%s">`, formatPct(recipe.PlatformFeePct)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<input type="number" name="tax_percent" value="%s">`, formatPct(recipe.TaxPct)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<button type="submit">%s</button></form>`, templ.EscapeString(submit)); err != nil {
			return err
		}

		return resultPanel(ctx, w, breakdown)
	})
}

// SavedMenus renders the saved-menus list alongside its data source,
// so the page can tell sheet-backed rows from local backups.
func SavedMenus(summaries []syncer.MenuSummary, source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section id="saved-menus" data-source="%s"><h2>Menu Tersimpan</h2>`, templ.EscapeString(source)); err != nil {
			return err
		}
		if len(summaries) == 0 {
			_, err := io.WriteString(w, `<p class="empty">Belum ada menu tersimpan.</p></section>`)
			return err
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, summary := range summaries {
			id := summary.MenuID
			if id == "" {
				id = summary.LocalID
			}
			if _, err := fmt.Fprintf(w,
				`<tr data-id="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(id),
				templ.EscapeString(summary.MenuName),
				templ.EscapeString(summary.Category),
				templ.EscapeString(pricing.FormatRupiah(summary.HPPPerUnit)),
				templ.EscapeString(pricing.FormatRupiah(summary.GofoodPrice)),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

func categorySelect(w io.Writer, recipe models.Recipe) error {
	if _, err := io.WriteString(w, `<select name="category">`); err != nil {
		return err
	}
	for _, category := range []string{models.CategoryFood, models.CategoryDrink} {
		selected := ""
		if recipe.Category == category {
			selected = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, category, selected, category); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select><select name="subcategory">`); err != nil {
		return err
	}
	for _, sub := range models.Subcategories[recipe.Category] {
		selected := ""
		if recipe.Subcategory == sub {
			selected = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, sub, selected, sub); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select>`)
	return err
}

func ingredientRow(w io.Writer, index int, row models.Ingredient) error {
	_, err := fmt.Fprintf(w,
		`<div class="ingredient-row" data-id="%s">`+
			`<input type="text" name="ingredients[%d][name]" placeholder="Nama Bahan" value="%s">`+
			`<input type="text" name="ingredients[%d][usage]" placeholder="Jumlah Pakai" value="%s">`+
			`<input type="text" name="ingredients[%d][purchase_price]" placeholder="Harga Beli" value="%s">`+
			`<input type="text" name="ingredients[%d][purchase_unit]" placeholder="Satuan Beli" value="%s">`+
			`</div>`,
		templ.EscapeString(row.ID),
		index, templ.EscapeString(row.Name),
		index, templ.EscapeString(row.Usage),
		index, templ.EscapeString(row.PurchasePrice),
		index, templ.EscapeString(row.PurchaseUnit),
	)
	return err
}

func resultPanel(ctx context.Context, w io.Writer, b pricing.Breakdown) error {
	if _, err := io.WriteString(w, `<section id="results">`); err != nil {
		return err
	}
	rows := []struct {
		label  string
		amount float64
	}{
		{"Total Bahan", b.TotalMaterial},
		{"Total Produksi", b.TotalProduction},
		{"HPP per Pcs", b.HPPPerUnit},
		{"Harga Dine-in", b.DineInPrice},
		{"Harga GoFood", b.GofoodPrice},
	}
	for _, row := range rows {
		if err := components.PriceRow(row.label, row.amount).Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
