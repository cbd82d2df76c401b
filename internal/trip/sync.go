package trip

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/gcal"
	"github.com/outingclub/trips-backend/internal/officer"
)

// RunSync is the officer-triggered entry point around Reconcile.
func (s *Service) RunSync(ctx context.Context, secret string) error {
	if !officer.Verify(secret, s.Passcode) {
		return apierr.ErrNotAuthorized
	}
	return s.Reconcile(ctx)
}

// Reconcile makes the calendar consistent with the Trips sheet inside the
// configured window. The embedded trip id in each event description is the
// only correlation key; eventId cells on rows are treated as cache hints.
//
// Steps, in order: delete events whose trip id matches no row (orphans),
// collapse duplicate events per live trip id down to one, then upsert every
// row's canonical event. Rows that fail individually are logged and
// skipped so one bad row cannot starve the rest of the pass. Running the
// pass twice with unchanged rows performs no calendar mutations the second
// time.
func (s *Service) Reconcile(ctx context.Context) error {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}

	liveIDs := map[string]bool{}
	for _, row := range rows {
		if id := strings.TrimSpace(row["tripId"]); id != "" {
			liveIDs[id] = true
		}
	}

	now := s.now()
	from := now.AddDate(0, 0, -s.SyncPastDays)
	to := now.AddDate(0, 0, s.SyncFutureDays)

	events, err := s.Cal.List(ctx, from, to)
	if err != nil {
		return err
	}

	// Events with no extractable trip id are foreign; leave them alone.
	eventsByTripID := map[string][]gcal.Event{}
	for _, ev := range events {
		tripID := ExtractTripID(ev.Description)
		if tripID == "" || ev.ID == "" {
			continue
		}
		eventsByTripID[tripID] = append(eventsByTripID[tripID], ev)
	}

	var deleted, collapsed int
	for tripID, group := range eventsByTripID {
		if !liveIDs[tripID] {
			for _, ev := range group {
				if err := s.Cal.Delete(ctx, ev.ID); err != nil {
					log.Printf("⚠️ sync: failed to delete orphan event %s (trip %s): %v", ev.ID, tripID, err)
					continue
				}
				deleted++
			}
			delete(eventsByTripID, tripID)
			continue
		}
		// Collapse duplicates before the upsert step so an in-place
		// update cannot leave stale copies behind. Survivor choice is
		// arbitrary; the first listed event wins.
		for _, dup := range group[1:] {
			if err := s.Cal.Delete(ctx, dup.ID); err != nil {
				log.Printf("⚠️ sync: failed to delete duplicate event %s (trip %s): %v", dup.ID, tripID, err)
				continue
			}
			collapsed++
		}
		eventsByTripID[tripID] = group[:1]
	}

	var upserted, skipped int
	for _, row := range rows {
		changed, err := s.reconcileRow(ctx, row, eventsByTripID)
		if err != nil {
			log.Printf("⚠️ sync: skipping trip %q: %v", row["tripId"], err)
			skipped++
			continue
		}
		if changed {
			upserted++
		}
	}

	log.Printf("🔄 sync: %d orphans deleted, %d duplicates collapsed, %d events upserted, %d rows skipped",
		deleted, collapsed, upserted, skipped)
	return nil
}

// reconcileRow brings one row's calendar projection up to date. It reports
// whether any calendar mutation happened.
func (s *Service) reconcileRow(ctx context.Context, row map[string]string, eventsByTripID map[string][]gcal.Event) (bool, error) {
	tripID := strings.TrimSpace(row["tripId"])
	if tripID == "" {
		return false, nil
	}

	want, err := s.rebuildEvent(tripID, row)
	if err != nil {
		return false, err
	}

	cachedID := strings.TrimSpace(row["eventId"])

	// Unchanged since the last pass: the surviving event is the cached one
	// and already matches the canonical payload. Nothing to do, which is
	// what makes back-to-back passes idempotent.
	if group := eventsByTripID[tripID]; len(group) > 0 {
		survivor := group[0]
		if survivor.ID == cachedID && eventMatches(survivor, want) {
			return false, nil
		}
	}

	if cachedID != "" {
		ok, err := s.Cal.Update(ctx, cachedID, want)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		// Cached id is stale (event gone); fall through to create.
	}

	eventID, err := s.Cal.Create(ctx, want)
	if err != nil {
		return false, err
	}
	if err := s.Repo.SetEventID(ctx, tripID, eventID); err != nil {
		return true, fmt.Errorf("event %s created but row update failed: %w", eventID, err)
	}
	return true, nil
}

// rebuildEvent recomputes the canonical calendar event from a stored row.
// Stored start/end are UTC instants; they are converted back to display-
// timezone parts the same way the original officer input was interpreted.
func (s *Service) rebuildEvent(tripID string, row map[string]string) (gcal.Event, error) {
	title := strings.TrimSpace(row["title"])
	if title == "" {
		return gcal.Event{}, fmt.Errorf("row has no title")
	}

	start, err := time.Parse(time.RFC3339, strings.TrimSpace(row["start"]))
	if err != nil {
		return gcal.Event{}, fmt.Errorf("unparseable start %q", row["start"])
	}

	end := start
	if raw := strings.TrimSpace(row["end"]); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			end = parsed
		}
	}

	isAllDay := parseBoolCell(row["isAllDay"])
	requestURL := JoinURL(s.SiteBaseURL, tripID)

	description := buildDescription(descriptionFields{
		TripID:        tripID,
		Activity:      strings.TrimSpace(row["activity"]),
		MeetTime:      strings.TrimSpace(row["meetTime"]),
		MeetPlace:     strings.TrimSpace(row["meetPlace"]),
		LeaderName:    strings.TrimSpace(row["leaderName"]),
		LeaderContact: strings.TrimSpace(row["leaderContact"]),
		Difficulty:    strings.TrimSpace(row["difficulty"]),
		GearAvailable: ParseGearCSV(row["gearAvailable"]),
		RequestURL:    requestURL,
		Notes:         strings.TrimSpace(row["notes"]),
	})

	ev := gcal.Event{
		Summary:     title,
		Description: description,
		Location:    strings.TrimSpace(row["location"]),
	}

	if isAllDay {
		// The stored end is already exclusive.
		startDate, _ := DateTimeParts(start, s.Timezone)
		endDate, _ := DateTimeParts(end, s.Timezone)
		ev.Start.Date = startDate
		ev.End.Date = endDate
	} else {
		tz := s.Timezone.String()
		ev.Start.DateTime = start.In(s.Timezone).Format(time.RFC3339)
		ev.Start.TimeZone = tz
		ev.End.DateTime = end.In(s.Timezone).Format(time.RFC3339)
		ev.End.TimeZone = tz
	}
	return ev, nil
}

// eventMatches compares the fields the sync pass owns. The TimeZone field
// is ignored because the API reports times in its own normalized form.
func eventMatches(have, want gcal.Event) bool {
	return have.Summary == want.Summary &&
		have.Description == want.Description &&
		have.Location == want.Location &&
		have.Start.Date == want.Start.Date &&
		have.End.Date == want.End.Date &&
		sameInstant(have.Start.DateTime, want.Start.DateTime) &&
		sameInstant(have.End.DateTime, want.End.DateTime)
}

// sameInstant compares two RFC3339 strings as instants so a payload sent
// with one UTC offset still matches the API echoing another.
func sameInstant(a, b string) bool {
	if a == b {
		return true
	}
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Equal(tb)
}
