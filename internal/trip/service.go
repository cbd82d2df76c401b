package trip

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/gcal"
	"github.com/outingclub/trips-backend/internal/officer"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

// publicWindow hides trips whose start is further in the past from the
// public listing.
const publicWindow = 7 * 24 * time.Hour

// Calendar is the slice of the calendar adapter the trip module needs.
type Calendar interface {
	Create(ctx context.Context, ev gcal.Event) (string, error)
	Update(ctx context.Context, eventID string, ev gcal.Event) (bool, error)
	Delete(ctx context.Context, eventID string) error
	List(ctx context.Context, from, to time.Time) ([]gcal.Event, error)
}

// Service wraps business logic for club trips. The sheet row is the source
// of truth; the calendar event is a projection kept consistent by the sync
// pass in sync.go.
type Service struct {
	Repo *Repository
	Cal  Calendar

	Passcode    string
	SiteBaseURL string
	Timezone    *time.Location

	SyncPastDays   int
	SyncFutureDays int

	now func() time.Time
}

func NewService(repo *Repository, cal Calendar, passcode, siteBaseURL string, tz *time.Location, syncPastDays, syncFutureDays int) *Service {
	return &Service{
		Repo:           repo,
		Cal:            cal,
		Passcode:       passcode,
		SiteBaseURL:    siteBaseURL,
		Timezone:       tz,
		SyncPastDays:   syncPastDays,
		SyncFutureDays: syncFutureDays,
		now:            time.Now,
	}
}

// Result is returned from the mutating operations.
type Result struct {
	TripID     string `json:"tripId"`
	EventID    string `json:"eventId"`
	RequestURL string `json:"requestUrl"`
}

// ===========================
// 📄 Public listing: trips starting in the future or the last 7 days,
// ascending by start.
func (s *Service) ListPublic(ctx context.Context) ([]PublicTrip, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	windowStart := s.now().Add(-publicWindow)
	trips := []PublicTrip{}

	for _, row := range rows {
		tripID := strings.TrimSpace(row["tripId"])
		if tripID == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, strings.TrimSpace(row["start"]))
		if err != nil {
			continue
		}
		if start.Before(windowStart) {
			continue
		}
		status, err := ParseSignupStatus(row["signupStatus"])
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, err)
		}
		trips = append(trips, PublicTrip{
			TripID:        tripID,
			Title:         strings.TrimSpace(row["title"]),
			Start:         start.UTC().Format(time.RFC3339),
			Location:      strings.TrimSpace(row["location"]),
			Difficulty:    strings.TrimSpace(row["difficulty"]),
			GearAvailable: ParseGearCSV(row["gearAvailable"]),
			IsAllDay:      parseBoolCell(row["isAllDay"]),
			SignupStatus:  status,
		})
	}

	sort.Slice(trips, func(i, j int) bool { return trips[i].Start < trips[j].Start })
	return trips, nil
}

// ===========================
// 🗂 Admin listing: every row, all fields.
func (s *Service) ListAdmin(ctx context.Context, secret string) ([]Trip, error) {
	if !officer.Verify(secret, s.Passcode) {
		return nil, apierr.ErrNotAuthorized
	}

	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	trips := []Trip{}
	for _, row := range rows {
		tripID := strings.TrimSpace(row["tripId"])
		if tripID == "" {
			continue
		}
		status, err := ParseSignupStatus(row["signupStatus"])
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, err)
		}
		trips = append(trips, Trip{
			TripID:        tripID,
			EventID:       strings.TrimSpace(row["eventId"]),
			Title:         strings.TrimSpace(row["title"]),
			Activity:      strings.TrimSpace(row["activity"]),
			Start:         strings.TrimSpace(row["start"]),
			End:           strings.TrimSpace(row["end"]),
			Location:      strings.TrimSpace(row["location"]),
			LeaderName:    strings.TrimSpace(row["leaderName"]),
			LeaderContact: strings.TrimSpace(row["leaderContact"]),
			Difficulty:    strings.TrimSpace(row["difficulty"]),
			MeetTime:      strings.TrimSpace(row["meetTime"]),
			MeetPlace:     strings.TrimSpace(row["meetPlace"]),
			Notes:         strings.TrimSpace(row["notes"]),
			GearAvailable: ParseGearCSV(row["gearAvailable"]),
			IsAllDay:      parseBoolCell(row["isAllDay"]),
			SignupStatus:  status,
		})
	}

	sort.Slice(trips, func(i, j int) bool { return trips[i].Start < trips[j].Start })
	return trips, nil
}

// ===========================
// 🎯 Create Trip
func (s *Service) Create(ctx context.Context, in Input) (*Result, error) {
	if !officer.Verify(in.OfficerSecret, s.Passcode) {
		return nil, apierr.ErrNotAuthorized
	}
	fields, sched, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	tripID := NewTripID(sched.Start, fields.Title, s.Timezone)
	requestURL := JoinURL(s.SiteBaseURL, tripID)
	event := s.buildEvent(tripID, fields, sched, requestURL)

	// Calendar first, then the authoritative row. If the row write fails
	// the event is an orphan until the next sync pass deletes it.
	eventID, err := s.Cal.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	err = s.Repo.Append(ctx, sheetstore.Row{
		"createdAt":     s.now().UTC().Format(time.RFC3339),
		"tripId":        tripID,
		"eventId":       eventID,
		"title":         fields.Title,
		"activity":      fields.Activity,
		"start":         sched.Start.UTC().Format(time.RFC3339),
		"end":           sched.End.UTC().Format(time.RFC3339),
		"location":      fields.Location,
		"leaderName":    fields.LeaderName,
		"leaderContact": fields.LeaderContact,
		"difficulty":    fields.Difficulty,
		"meetTime":      fields.MeetTime,
		"meetPlace":     fields.MeetPlace,
		"notes":         fields.Notes,
		"gearAvailable": strings.Join(fields.Gear, ","),
		"isAllDay":      formatBoolCell(sched.AllDay),
		"signupStatus":  string(fields.Status),
	})
	if err != nil {
		return nil, err
	}

	return &Result{TripID: tripID, EventID: eventID, RequestURL: requestURL}, nil
}

// ===========================
// 🛠 Update Trip: replace the calendar event, overwrite the row.
func (s *Service) Update(ctx context.Context, tripID string, in Input) (*Result, error) {
	if !officer.Verify(in.OfficerSecret, s.Passcode) {
		return nil, apierr.ErrNotAuthorized
	}

	match, err := s.Repo.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	fields, sched, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	requestURL := JoinURL(s.SiteBaseURL, tripID)
	event := s.buildEvent(tripID, fields, sched, requestURL)

	if oldEventID := strings.TrimSpace(match.Row["eventId"]); oldEventID != "" {
		if err := s.Cal.Delete(ctx, oldEventID); err != nil {
			return nil, err
		}
	}

	eventID, err := s.Cal.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	err = s.Repo.UpdateColumns(ctx, match.RowIndex, sheetstore.Row{
		"tripId":        tripID,
		"eventId":       eventID,
		"title":         fields.Title,
		"activity":      fields.Activity,
		"start":         sched.Start.UTC().Format(time.RFC3339),
		"end":           sched.End.UTC().Format(time.RFC3339),
		"location":      fields.Location,
		"leaderName":    fields.LeaderName,
		"leaderContact": fields.LeaderContact,
		"difficulty":    fields.Difficulty,
		"meetTime":      fields.MeetTime,
		"meetPlace":     fields.MeetPlace,
		"notes":         fields.Notes,
		"gearAvailable": strings.Join(fields.Gear, ","),
		"isAllDay":      formatBoolCell(sched.AllDay),
		"signupStatus":  string(fields.Status),
	})
	if err != nil {
		return nil, err
	}

	return &Result{TripID: tripID, EventID: eventID, RequestURL: requestURL}, nil
}

// ===========================
// ❌ Delete Trip: remove the event, then the row.
func (s *Service) Delete(ctx context.Context, tripID, secret string) error {
	if !officer.Verify(secret, s.Passcode) {
		return apierr.ErrNotAuthorized
	}

	match, err := s.Repo.FindByTripID(ctx, tripID)
	if err != nil {
		return err
	}

	if eventID := strings.TrimSpace(match.Row["eventId"]); eventID != "" {
		if err := s.Cal.Delete(ctx, eventID); err != nil {
			return err
		}
	}

	return s.Repo.Delete(ctx, match.RowIndex)
}

// validatedFields carries the cleaned officer input.
type validatedFields struct {
	Title         string
	Activity      string
	Location      string
	LeaderName    string
	LeaderContact string
	Difficulty    string
	MeetTime      string
	MeetPlace     string
	Notes         string
	Gear          []string
	Status        SignupStatus
}

func (s *Service) validate(in Input) (validatedFields, Schedule, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return validatedFields{}, Schedule{}, apierr.Required("title")
	}
	status, err := ParseSignupStatus(in.SignupStatus)
	if err != nil {
		return validatedFields{}, Schedule{}, err
	}
	sched, err := BuildSchedule(ScheduleInput{
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   strings.TrimSpace(in.EndDate),
		StartTime: strings.TrimSpace(in.StartTime),
		EndTime:   strings.TrimSpace(in.EndTime),
	}, s.Timezone)
	if err != nil {
		return validatedFields{}, Schedule{}, err
	}

	gear := in.GearAvailable
	if gear == nil {
		gear = GearList{}
	}

	return validatedFields{
		Title:         title,
		Activity:      strings.TrimSpace(in.Activity),
		Location:      strings.TrimSpace(in.Location),
		LeaderName:    strings.TrimSpace(in.LeaderName),
		LeaderContact: strings.TrimSpace(in.LeaderContact),
		Difficulty:    strings.TrimSpace(in.Difficulty),
		MeetTime:      strings.TrimSpace(in.MeetTime),
		MeetPlace:     strings.TrimSpace(in.MeetPlace),
		Notes:         strings.TrimSpace(in.Notes),
		Gear:          gear,
		Status:        status,
	}, sched, nil
}

// buildEvent produces the canonical calendar projection of a trip. All-day
// events carry date-only start/end (end exclusive); timed events carry
// zone-qualified instants in the display timezone.
func (s *Service) buildEvent(tripID string, fields validatedFields, sched Schedule, requestURL string) gcal.Event {
	description := buildDescription(descriptionFields{
		TripID:        tripID,
		Activity:      fields.Activity,
		MeetTime:      fields.MeetTime,
		MeetPlace:     fields.MeetPlace,
		LeaderName:    fields.LeaderName,
		LeaderContact: fields.LeaderContact,
		Difficulty:    fields.Difficulty,
		GearAvailable: fields.Gear,
		RequestURL:    requestURL,
		Notes:         fields.Notes,
	})

	ev := gcal.Event{
		Summary:     fields.Title,
		Description: description,
		Location:    fields.Location,
	}
	if sched.AllDay {
		startDate, _ := DateTimeParts(sched.Start, s.Timezone)
		endDate, _ := DateTimeParts(sched.End, s.Timezone)
		ev.Start = gcal.EventTime{Date: startDate}
		ev.End = gcal.EventTime{Date: endDate}
	} else {
		tz := s.Timezone.String()
		ev.Start = gcal.EventTime{DateTime: sched.Start.In(s.Timezone).Format(time.RFC3339), TimeZone: tz}
		ev.End = gcal.EventTime{DateTime: sched.End.In(s.Timezone).Format(time.RFC3339), TimeZone: tz}
	}
	return ev
}

func parseBoolCell(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "1" || v == "true"
}

func formatBoolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
