package cart

// Package cart contains the pure shopping-cart domain: line items, clamped
// quantity mutations, derived aggregates, and the local/remote merge policy.
// All I/O lives in the service and adapter layers.

import (
	"github.com/ecomsuite/storefront-client/internal/domain/money"
)

// Item is a fully hydrated cart line item. Items are keyed by ProductID;
// a cart never holds two lines for the same product.
type Item struct {
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unit_price"`
	Quantity  int         `json:"quantity"`
	ImageURL  string      `json:"image_url"`
	Stock     int         `json:"stock"`
}

// Subtotal returns unit price times quantity.
func (it Item) Subtotal() money.Cents {
	return it.UnitPrice.Mul(it.Quantity)
}

// Cart is an ordered collection of line items. The zero value is an empty cart.
type Cart struct {
	items []Item
}

// New builds a cart from the given items. Duplicate product ids collapse into
// the first occurrence, accumulating quantity clamped to stock.
func New(items []Item) Cart {
	var c Cart
	for _, it := range items {
		if idx := c.index(it.ProductID); idx >= 0 {
			c.items[idx].Quantity = clampQuantity(c.items[idx].Quantity+it.Quantity, c.items[idx].Stock)
			continue
		}
		it.Quantity = clampQuantity(it.Quantity, it.Stock)
		c.items = append(c.items, it)
	}
	return c
}

func (c *Cart) index(productID int64) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the line item for a product, if present.
func (c *Cart) Find(productID int64) (Item, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.items[idx], true
	}
	return Item{}, false
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Count returns the total item count, summing quantities.
func (c *Cart) Count() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Total returns the total price, summing price times quantity per line.
func (c *Cart) Total() money.Cents {
	var total money.Cents
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Add puts one unit of the product into the cart. An existing line increments
// by one capped at its stock ceiling; at the ceiling the call is a no-op.
// A new product appends a line with quantity one. Reports whether the cart changed.
func (c *Cart) Add(it Item) bool {
	if idx := c.index(it.ProductID); idx >= 0 {
		line := &c.items[idx]
		if line.Quantity >= line.Stock {
			return false
		}
		line.Quantity++
		return true
	}

	it.Quantity = clampQuantity(1, it.Stock)
	if it.Quantity == 0 {
		// Out-of-stock products never enter the cart.
		return false
	}
	c.items = append(c.items, it)
	return true
}

// SetQuantity sets a line's quantity, clamped into [1, stock]. Returns the
// stored line and whether the product was present.
func (c *Cart) SetQuantity(productID int64, qty int) (Item, bool) {
	idx := c.index(productID)
	if idx < 0 {
		return Item{}, false
	}
	c.items[idx].Quantity = clampQuantity(qty, c.items[idx].Stock)
	return c.items[idx], true
}

// Remove deletes a line item. An absent product id is a no-op.
// Reports whether the cart changed.
func (c *Cart) Remove(productID int64) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Replace swaps the cart's contents for the given items.
func (c *Cart) Replace(items []Item) {
	c.items = make([]Item, len(items))
	copy(c.items, items)
}

// clampQuantity clamps qty into [1, stock]; a non-positive stock yields 0.
func clampQuantity(qty, stock int) int {
	if stock <= 0 {
		return 0
	}
	if qty < 1 {
		return 1
	}
	if qty > stock {
		return stock
	}
	return qty
}
