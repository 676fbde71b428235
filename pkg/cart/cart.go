// Package cart implements the session-backed shopping cart.
//
// The cart lives in the visitor's session under a single key. Unit prices are
// snapshotted when a line is first added, so later catalog price changes do
// not affect carts already in progress.
package cart

import (
	"github.com/shashiranjanraj/bloom/pkg/collection"
	"github.com/shashiranjanraj/bloom/pkg/session"
)

const sessionKey = "cart"

// Line is one cart position.
type Line struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"` // locked at first add
	Quantity  int     `json:"quantity"`
}

// LineTotal returns quantity times the locked unit price.
func (l Line) LineTotal() float64 { return l.UnitPrice * float64(l.Quantity) }

// Cart wraps the session storage for cart lines.
type Cart struct {
	s     *session.Session
	lines []Line
}

// FromSession loads the cart stored in s. A session without a cart yields an
// empty cart.
func FromSession(s *session.Session) *Cart {
	c := &Cart{s: s}
	s.GetJSON(sessionKey, &c.lines)
	return c
}

// Add puts qty units of a product into the cart. When the product is already
// present the existing unit price is kept; qty is added to the current
// quantity, or replaces it when replace is true. A replace to zero or below
// removes the line.
func (c *Cart) Add(productID uint, name string, unitPrice float64, qty int, replace bool) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if replace {
			c.lines[i].Quantity = qty
		} else {
			c.lines[i].Quantity += qty
		}
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		c.save()
		return
	}
	if qty <= 0 {
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
	})
	c.save()
}

// Remove deletes the line for productID, if present.
func (c *Cart) Remove(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.save()
			return
		}
	}
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the sum of all line totals.
func (c *Cart) Total() float64 {
	return collection.Sum(c.lines, Line.LineTotal)
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Clear removes the cart from the session entirely.
func (c *Cart) Clear() {
	c.lines = nil
	c.s.Delete(sessionKey)
}

func (c *Cart) save() {
	c.s.Set(sessionKey, c.lines)
}
