package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	orders "order-portal/internal/features/orders/domain"

	"github.com/spf13/cast"
)

var (
	// ErrLineNotFound is returned when a quantity is set for a product that is not in the cart.
	ErrLineNotFound = errors.New("product is not in the cart")
	ErrOutOfStock   = errors.New("product is out of stock")
)

// Line is one product of a working cart.
type Line struct {
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	orders.Quantities
}

// Cart is a client's working order. Quantities of branches the client does
// not collect are always zero.
type Cart struct {
	ClientID    uint      `json:"client_id"`
	BranchCount int       `json:"branch_count"`
	Lines       []Line    `json:"lines"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New returns an empty cart for a client.
func New(clientID uint, branchCount int) *Cart {
	return &Cart{
		ClientID:    clientID,
		BranchCount: branchCount,
		Lines:       []Line{},
	}
}

func (c *Cart) index(productID uint) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product in branch A, appending a line when needed.
// Branch A saturates at orders.MaxQuantity.
func (c *Cart) Add(productID uint, sku string) {
	if i := c.index(productID); i >= 0 {
		if c.Lines[i].A < orders.MaxQuantity {
			c.Lines[i].A++
		}
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID:  productID,
		SKU:        sku,
		Quantities: orders.Quantities{A: 1},
	})
}

// SetQuantity stores the coerced raw value for one branch of a line. Disabled
// branches stay at zero and a line left with nothing is dropped. It reports
// whether the product was in the cart.
func (c *Cart) SetQuantity(productID uint, branch orders.Branch, raw any) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}

	qty := CoerceQuantity(raw)
	if !branch.EnabledFor(c.BranchCount) {
		qty = 0
	}
	c.Lines[i].Set(branch, qty)

	if c.Lines[i].IsZero() {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
	return true
}

// Remove drops the line of a product. Missing products are ignored.
func (c *Cart) Remove(productID uint) {
	if i := c.index(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// ApplyBranchCount re-masks every line after the client's branch count changed.
func (c *Cart) ApplyBranchCount(branchCount int) {
	c.BranchCount = branchCount
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		l.Quantities = l.Masked(branchCount)
		if !l.IsZero() {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// OrderLines converts the cart into order creation lines.
func (c *Cart) OrderLines() []orders.Line {
	lines := make([]orders.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, orders.Line{SKU: l.SKU, Quantities: l.Quantities})
	}
	return lines
}

// CoerceQuantity turns user input into a non-negative whole quantity.
// Numbers are truncated, numeric strings are parsed, anything else is 0.
func CoerceQuantity(raw any) int {
	switch v := raw.(type) {
	case nil, bool:
		return 0
	case string:
		raw = strings.TrimSpace(v)
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > orders.MaxQuantity {
		return orders.MaxQuantity
	}
	return int(math.Trunc(f))
}
