package sheets

// Wire actions understood by the deployment.
const (
	ActionSaveMenu       = "save_menu"
	ActionUpdateMenu     = "update_menu"
	ActionDeleteMenu     = "delete_menu"
	ActionTestConnection = "test_connection"
)

// PayloadSource tags every save so the sheet can tell which client
// wrote the row.
const PayloadSource = "HPP Calculator App"

// IngredientPayload is one ingredient row as the sheet stores it.
// Amount fields stay strings, matching the form inputs they came from.
type IngredientPayload struct {
	Name             string `json:"name"`
	Usage            string `json:"usage"`
	Unit             string `json:"unit"`
	PurchasePrice    string `json:"purchase_price"`
	PurchaseUnit     string `json:"purchase_unit"`
	PurchaseUnitType string `json:"purchase_unit_type"`
	Category         string `json:"category"`
	Supplier         string `json:"supplier"`
	Notes            string `json:"notes"`
}

// PackagingPayload is the flat per-batch consumable record.
type PackagingPayload struct {
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// MenuPayload is the complete flattened snapshot a save or update
// sends: the recipe's inputs plus every value the pricing engine
// derived from them. Updates carry MenuID and overwrite the remote
// rows wholesale.
type MenuPayload struct {
	Action           string              `json:"action"`
	MenuID           string              `json:"menu_id,omitempty"`
	MenuName         string              `json:"menu_name"`
	Category         string              `json:"category"`
	Subcategory      string              `json:"subcategory"`
	Brand            string              `json:"brand"`
	TargetCost       float64             `json:"target_cost"`
	TargetQty        float64             `json:"target_qty"`
	TotalMaterial    float64             `json:"total_material"`
	PackagingCost    float64             `json:"packaging_cost"`
	TotalProduction  float64             `json:"total_production"`
	HPPPerPiece      float64             `json:"hpp_per_piece"`
	ProfitMargin     float64             `json:"profit_margin"`
	DineInPrice      float64             `json:"dine_in_price"`
	GofoodPercentage float64             `json:"gofood_percentage"`
	TaxPercentage    float64             `json:"tax_percentage"`
	GofoodPrice      float64             `json:"gofood_price"`
	GrossProfit      float64             `json:"gross_profit"`
	TotalProfit      float64             `json:"total_profit"`
	TotalRevenue     float64             `json:"total_revenue"`
	Notes            string              `json:"notes"`
	Ingredients      []IngredientPayload `json:"ingredients"`
	Packaging        PackagingPayload    `json:"packaging"`
	Source           string              `json:"source"`
}
