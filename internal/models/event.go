package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical calendar-date layout used on the wire.
const ISODate = "2006-01-02"

// Event is a scheduled race weekend with its own venue, date and ticket
// catalog. Every ticket belongs to exactly one event; the nested list is
// stored and transmitted as a single attached document, not as separate
// rows. JSON field names follow the event API wire contract.
type Event struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Year     int      `json:"year"`
	ImageURL string   `json:"imageUrl"`
	FlagURL  string   `json:"flagUrl"`
	Tickets  []Ticket `json:"tickets"`
}

// EventID derives the stable identity for a new event from its name and
// season year: lower-kebab-case name, a dash, then the year. The id never
// changes after creation.
func EventID(name string, year int) string {
	slug := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
	return slug + "-" + strconv.Itoa(year)
}

// Validate checks the event invariants.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("event name is required")
	}
	if e.Date == "" {
		return errors.New("event date is required")
	}
	if _, err := time.Parse(ISODate, e.Date); err != nil {
		return fmt.Errorf("event date must be in YYYY-MM-DD form: %q", e.Date)
	}
	if e.Year <= 0 {
		return errors.New("season year is required")
	}
	for i := range e.Tickets {
		if err := e.Tickets[i].Validate(); err != nil {
			return fmt.Errorf("ticket %d: %w", i, err)
		}
	}
	if id := duplicateTicketID(e.Tickets); id != "" {
		return fmt.Errorf("duplicate ticket id %q", id)
	}
	return nil
}

func duplicateTicketID(tickets []Ticket) string {
	seen := make(map[string]struct{}, len(tickets))
	for i := range tickets {
		if _, dup := seen[tickets[i].ID]; dup {
			return tickets[i].ID
		}
		seen[tickets[i].ID] = struct{}{}
	}
	return ""
}

// TicketByID returns a copy of the ticket with the given id.
func (e *Event) TicketByID(id string) (Ticket, bool) {
	for i := range e.Tickets {
		if e.Tickets[i].ID == id {
			return e.Tickets[i].Clone(), true
		}
	}
	return Ticket{}, false
}

// Clone returns a deep copy of the event including its ticket list.
func (e *Event) Clone() *Event {
	out := *e
	out.Tickets = CloneTickets(e.Tickets)
	return &out
}

// CloneTickets deep-copies a ticket list.
func CloneTickets(tickets []Ticket) []Ticket {
	if tickets == nil {
		return nil
	}
	out := make([]Ticket, len(tickets))
	for i := range tickets {
		out[i] = tickets[i].Clone()
	}
	return out
}

// CloneEvents deep-copies an event list.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	for i := range events {
		out[i] = *events[i].Clone()
	}
	return out
}
