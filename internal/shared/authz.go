package shared

// PageActions lists the per-page action grants for a role.
type PageActions struct {
	New     bool `json:"new"`
	Edit    bool `json:"edit"`
	Delete  bool `json:"delete"`
	Receipt bool `json:"receipt"`
	Deliver bool `json:"deliver"`
}

// PermissionMap maps a page name to the actions granted on it. A page is
// visible to the role exactly when its name is present as a key.
type PermissionMap map[string]PageActions

// Page names used as permission keys. They mirror the admin console pages.
const (
	PagePaymentType     = "Payment Type"
	PageStockCategory   = "Stock Category"
	PageCustomer        = "Customer"
	PageOrder           = "Order"
	PageDelivery        = "Delivery"
	PageExpenseType     = "Expense Type"
	PageExpense         = "Expense"
	PageDailyDashboard  = "Daily Dashboard"
	PageMonthlyReport   = "Monthly Report"
	PageIncomeStatement = "Income Statement"
)

// CanView reports whether the page is present in the map at all.
func (p PermissionMap) CanView(page string) bool {
	_, ok := p[page]
	return ok
}

// Allows reports whether the named action is granted on the page.
func (p PermissionMap) Allows(page, action string) bool {
	actions, ok := p[page]
	if !ok {
		return false
	}
	switch action {
	case "new":
		return actions.New
	case "edit":
		return actions.Edit
	case "delete":
		return actions.Delete
	case "receipt":
		return actions.Receipt
	case "deliver":
		return actions.Deliver
	default:
		return false
	}
}
