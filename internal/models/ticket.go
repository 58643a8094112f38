package models

import (
	"errors"
	"strings"
)

// TicketCategory classifies a seating or access option. The set below covers
// the standard grandstand tiers; admin-created tickets may carry custom
// category labels, so unknown values are accepted everywhere.
type TicketCategory string

const (
	CategoryMainGrandstand   TicketCategory = "Main Grandstand"
	CategoryNorthGrandstand  TicketCategory = "North Grandstand"
	CategoryT2Grandstand     TicketCategory = "T2 Grandstand"
	CategoryGeneralAdmission TicketCategory = "General Admission"
)

// Known reports whether the category is one of the standard tiers.
func (c TicketCategory) Known() bool {
	switch c {
	case CategoryMainGrandstand, CategoryNorthGrandstand, CategoryT2Grandstand, CategoryGeneralAdmission:
		return true
	default:
		return false
	}
}

// Ticket is a purchasable seating option belonging to exactly one event.
// JSON field names follow the event API wire contract.
type Ticket struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    TicketCategory `json:"category"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Available   bool           `json:"available"`
	ImageURL    string         `json:"imageUrl"`
	Description string         `json:"description"`
	Features    []string       `json:"features"`
	Format      string         `json:"format"`
}

// Validate checks the ticket invariants: id and name are required and the
// price must not be negative.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("ticket id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("ticket name is required")
	}
	if t.Price < 0 {
		return errors.New("ticket price cannot be negative")
	}
	return nil
}

// Clone returns a deep copy of the ticket.
func (t *Ticket) Clone() Ticket {
	out := *t
	if t.Features != nil {
		out.Features = append([]string(nil), t.Features...)
	}
	return out
}
