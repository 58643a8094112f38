package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
)

// RemoteEventRepository speaks the event CRUD API over HTTP. Ticket lists
// travel as one nested JSON array per event; store-native date and ticket
// representations are normalized into the canonical entity shape on read.
type RemoteEventRepository struct {
	baseURL string
	token   string
	client  *http.Client
	logger  zerolog.Logger
}

// NewRemoteEventRepository returns a client for the API rooted at baseURL
// (e.g. "http://localhost:3001/api"). The token, when set, is sent as a
// bearer credential on mutating requests.
func NewRemoteEventRepository(baseURL, token string, logger zerolog.Logger) *RemoteEventRepository {
	return &RemoteEventRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// eventPayload is the wire form of an event. Tickets may arrive either as a
// JSON array or as a JSON string wrapping one (stores that keep the list in
// a text column return the latter), and dates may carry a store-native
// datetime suffix.
type eventPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Date     string          `json:"date"`
	Year     int             `json:"year"`
	ImageURL string          `json:"imageUrl"`
	FlagURL  string          `json:"flagUrl"`
	Tickets  json.RawMessage `json:"tickets"`
}

// ListEvents fetches the full catalog.
func (r *RemoteEventRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", models.ErrStorageUnavailable, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list events: unexpected status %d", models.ErrStorageUnavailable, resp.StatusCode)
	}

	var payloads []eventPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("%w: decode events: %v", models.ErrStorageUnavailable, err)
	}

	events := make([]models.Event, 0, len(payloads))
	for _, p := range payloads {
		event, err := p.toEvent()
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", models.ErrStorageUnavailable, p.ID, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// CreateEvent posts a new event. The server echo is ignored beyond the
// status check; the submitted entity is returned on success.
func (r *RemoteEventRepository) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	resp, err := r.send(ctx, http.MethodPost, r.baseURL+"/events", event)
	if err != nil {
		return nil, fmt.Errorf("%w: create event %q: %v", models.ErrWriteFailed, event.ID, err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return event.Clone(), nil
	case http.StatusConflict:
		return nil, fmt.Errorf("create event %q: %w", event.ID, models.ErrDuplicateEvent)
	default:
		return nil, fmt.Errorf("%w: create event %q: unexpected status %d", models.ErrWriteFailed, event.ID, resp.StatusCode)
	}
}

// UpdateEvent replaces the event with the given id wholesale.
func (r *RemoteEventRepository) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	resp, err := r.send(ctx, http.MethodPut, r.baseURL+"/events/"+event.ID, event)
	if err != nil {
		return nil, fmt.Errorf("%w: update event %q: %v", models.ErrWriteFailed, event.ID, err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return event.Clone(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("update event %q: %w", event.ID, models.ErrNotFound)
	default:
		return nil, fmt.Errorf("%w: update event %q: unexpected status %d", models.ErrWriteFailed, event.ID, resp.StatusCode)
	}
}

// DeleteEvent removes the event with the given id.
func (r *RemoteEventRepository) DeleteEvent(ctx context.Context, id string) error {
	resp, err := r.send(ctx, http.MethodDelete, r.baseURL+"/events/"+id, nil)
	if err != nil {
		return fmt.Errorf("%w: delete event %q: %v", models.ErrWriteFailed, id, err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("delete event %q: %w", id, models.ErrNotFound)
	default:
		return fmt.Errorf("%w: delete event %q: unexpected status %d", models.ErrWriteFailed, id, resp.StatusCode)
	}
}

func (r *RemoteEventRepository) send(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	return r.client.Do(req)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func (p eventPayload) toEvent() (models.Event, error) {
	date, err := normalizeDate(p.Date)
	if err != nil {
		return models.Event{}, err
	}

	tickets, err := decodeTickets(p.Tickets)
	if err != nil {
		return models.Event{}, err
	}

	return models.Event{
		ID:       p.ID,
		Name:     p.Name,
		Location: p.Location,
		Date:     date,
		Year:     p.Year,
		ImageURL: p.ImageURL,
		FlagURL:  p.FlagURL,
		Tickets:  tickets,
	}, nil
}

// normalizeDate converts a store-native date representation into the
// canonical YYYY-MM-DD form.
func normalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(models.ISODate, raw); err == nil {
		return raw, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(models.ISODate), nil
	}
	// Datetime without a timezone, as returned by some SQL drivers.
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.Format(models.ISODate), nil
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

// decodeTickets accepts the ticket list either as a JSON array or as a JSON
// string containing one.
func decodeTickets(raw json.RawMessage) ([]models.Ticket, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("decode ticket payload: %w", err)
		}
		raw = json.RawMessage(inner)
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}
