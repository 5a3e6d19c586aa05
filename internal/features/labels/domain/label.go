package domain

// Label is one entry of a display table: a stored enum value and the text
// shown for it.
type Label struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Lookup returns the label of value in table.
func Lookup(table []Label, value string) (string, bool) {
	for _, l := range table {
		if l.Value == value {
			return l.Label, true
		}
	}
	return "", false
}

// Tables groups every display table served to clients.
type Tables struct {
	ProductStatus   []Label `json:"product_status"`
	ProductCategory []Label `json:"product_category"`
	OrderStatus     []Label `json:"order_status"`
	OrderItemType   []Label `json:"order_item_type"`
}
