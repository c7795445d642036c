package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"hppcalc/internal/pricing"
	"hppcalc/internal/syncer"
	"hppcalc/internal/views/layout"
	"hppcalc/internal/views/pages"
	"hppcalc/models"
)

// Home renders the calculator: the form (restored into edit mode when
// the session is editing a menu), the connection badge, and the
// recent-menus list.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	recipe := models.NewRecipe()
	state, message := syncer.StatusChecking, "Checking connection..."
	var summaries []syncer.MenuSummary
	source := syncer.SourceLocal

	if controller != nil {
		state, message = controller.Status()
		if menuID := editModeID(r); menuID != "" {
			if loaded, result := controller.Load(r.Context(), menuID); result.Kind != syncer.ResultFailed {
				recipe = loaded
			}
		}
		summaries, source = controller.List(r.Context(), "", "")
	}

	calculator := pages.Calculator(recipe, pricing.Compute(recipe), state, message, flashMessage(r))
	saved := pages.SavedMenus(summaries, source)
	content := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if err := calculator.Render(ctx, out); err != nil {
			return err
		}
		return saved.Render(ctx, out)
	})

	renderComponent(w, r, layout.Page("HPP Calculator", content))
}
