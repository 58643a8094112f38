package models

import (
	"fmt"
	"strings"
	"sync"
)

// CartLine is a ticket snapshot held in the cart together with a quantity.
type CartLine struct {
	Ticket
	Quantity int `json:"quantity"`
}

// Cart is the in-memory collection of selected tickets for one shopping
// session. At most one line exists per ticket id; totals are derived on
// read and never cached.
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts a ticket into the cart. If a line with the same ticket id is
// already present its quantity is incremented instead of appending a
// duplicate line. Add never fails.
func (c *Cart) Add(t Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == t.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Ticket: t.Clone(), Quantity: 1})
}

// Remove drops the whole line for the given ticket id regardless of its
// quantity. There is deliberately no decrement-by-one operation; removal
// is all-or-nothing per line.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ID != id {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, len(c.lines))
	for i, line := range c.lines {
		out[i] = CartLine{Ticket: line.Ticket.Clone(), Quantity: line.Quantity}
	}
	return out
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Count returns the sum of quantities over all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear empties the cart. It is called once, when a checkout completes.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Manifest renders the cart contents as a short human-readable line, e.g.
// "1x Main Grandstand, 2x North Grandstand".
func (c *Cart) Manifest() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		parts = append(parts, fmt.Sprintf("%dx %s", line.Quantity, line.Name))
	}
	return strings.Join(parts, ", ")
}
