package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// Event is the adapter's view of a calendar event. Exactly one of
// Start.Date / Start.DateTime is set, and End mirrors that choice: date-only
// for all-day events, RFC3339 instant plus IANA zone for timed ones.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
}

type EventTime struct {
	Date     string // "2006-01-02", all-day events
	DateTime string // RFC3339, timed events
	TimeZone string
}

// Client wraps one Google calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

func NewClient(svc *calendar.Service, calendarID string) *Client {
	return &Client{svc: svc, calendarID: calendarID}
}

// Create inserts an event and returns its id.
func (c *Client) Create(ctx context.Context, ev Event) (string, error) {
	created, err := c.svc.Events.Insert(c.calendarID, toAPI(ev)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar insert: %w", err)
	}
	return created.Id, nil
}

// Update overwrites the event with the given id. It returns false (and no
// error) when the id no longer resolves, so callers can fall back to Create.
func (c *Client) Update(ctx context.Context, eventID string, ev Event) (bool, error) {
	_, err := c.svc.Events.Update(c.calendarID, eventID, toAPI(ev)).Context(ctx).Do()
	if err != nil {
		if isGone(err) {
			return false, nil
		}
		return false, fmt.Errorf("calendar update %s: %w", eventID, err)
	}
	return true, nil
}

// Delete removes an event. Deleting an id that is already gone is not an
// error.
func (c *Client) Delete(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		if isGone(err) {
			return nil
		}
		return fmt.Errorf("calendar delete %s: %w", eventID, err)
	}
	return nil
}

// List returns all events in [from, to), recurring events expanded.
func (c *Client) List(ctx context.Context, from, to time.Time) ([]Event, error) {
	var out []Event
	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			MaxResults(2500).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("calendar list: %w", err)
		}
		for _, item := range resp.Items {
			out = append(out, fromAPI(item))
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			return out, nil
		}
	}
}

func toAPI(ev Event) *calendar.Event {
	return &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       toAPITime(ev.Start),
		End:         toAPITime(ev.End),
	}
}

func toAPITime(t EventTime) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		Date:     t.Date,
		DateTime: t.DateTime,
		TimeZone: t.TimeZone,
	}
}

func fromAPI(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Start != nil {
		ev.Start = EventTime{Date: item.Start.Date, DateTime: item.Start.DateTime, TimeZone: item.Start.TimeZone}
	}
	if item.End != nil {
		ev.End = EventTime{Date: item.End.Date, DateTime: item.End.DateTime, TimeZone: item.End.TimeZone}
	}
	return ev
}

// isGone reports whether the API said the target event no longer exists.
// 410 comes back for cancelled events, 404 for unknown ids.
func isGone(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 404 || gerr.Code == 410
	}
	return false
}
