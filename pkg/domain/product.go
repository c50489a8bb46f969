package domain

// Product is one of the PioneersX product lines sold through the backend.
type Product struct {
	ID       string
	Name     string
	Tagline  string
	HexColor string
}

// The product lines that share the account backend.
var Products = map[string]Product{
	"analyticsx": {ID: "analyticsx", Name: "AnalyticsX", Tagline: "Data analytics & BI", HexColor: "#3B82F6"},
	"assistx":    {ID: "assistx", Name: "AssistX", Tagline: "AI customer assistant", HexColor: "#8B5CF6"},
	"clinix":     {ID: "clinix", Name: "CliniX", Tagline: "Clinic management", HexColor: "#10B981"},
	"pioneersx":  {ID: "pioneersx", Name: "PioneersX", Tagline: "Custom software studio", HexColor: "#F59E0B"},
	"webar":      {ID: "webar", Name: "WebAR", Tagline: "Augmented reality on the web", HexColor: "#EC4899"},
}

// ValidProduct returns true if the given ID is a known product line.
func ValidProduct(id string) bool {
	_, ok := Products[id]
	return ok
}

// ProductName returns the display name for id, or id itself when unknown.
func ProductName(id string) string {
	if p, ok := Products[id]; ok {
		return p.Name
	}
	return id
}

// Billing cycles accepted by /payments/create-order.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// ValidBillingCycle returns true for "monthly" and "yearly".
func ValidBillingCycle(cycle string) bool {
	return cycle == BillingMonthly || cycle == BillingYearly
}
