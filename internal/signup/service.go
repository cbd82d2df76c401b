package signup

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/officer"
	"github.com/outingclub/trips-backend/internal/sheetstore"
	"github.com/outingclub/trips-backend/internal/trip"
)

// Notifier sends the officers a heads-up mail; a nil Notifier disables it.
type Notifier interface {
	Notify(subject, body string) error
}

type Service struct {
	Repo     *Repository
	Passcode string
	Mailer   Notifier

	now func() time.Time
}

func NewService(repo *Repository, passcode string, mailer Notifier) *Service {
	return &Service{Repo: repo, Passcode: passcode, Mailer: mailer, now: time.Now}
}

// ===========================
// 📝 Submit join request (public)
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Request, error) {
	tripID := strings.TrimSpace(in.TripID)
	if tripID == "" {
		return nil, apierr.Required("tripId")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Required("name")
	}
	contact := strings.TrimSpace(in.Contact)
	if contact == "" {
		return nil, apierr.Required("contact")
	}

	req := &Request{
		RequestID:   uuid.NewString(),
		SubmittedAt: s.now().UTC().Format(time.RFC3339),
		TripID:      tripID,
		Name:        name,
		Contact:     contact,
		Carpool:     strings.TrimSpace(in.Carpool),
		GearNeeded:  trip.NormalizeGear(in.GearNeeded),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      StatusPending,
	}

	err := s.Repo.Append(ctx, sheetstore.Row{
		"requestId":   req.RequestID,
		"submittedAt": req.SubmittedAt,
		"tripId":      req.TripID,
		"name":        req.Name,
		"contact":     req.Contact,
		"carpool":     req.Carpool,
		"gearNeeded":  strings.Join(req.GearNeeded, ","),
		"notes":       req.Notes,
		"status":      string(req.Status),
	})
	if err != nil {
		return nil, err
	}

	if s.Mailer != nil {
		body := "Trip: " + req.TripID + "\nName: " + req.Name + "\nContact: " + req.Contact
		if req.Notes != "" {
			body += "\n\nNotes:\n" + req.Notes
		}
		if err := s.Mailer.Notify("Trip join request: "+req.TripID, body); err != nil {
			log.Printf("⚠️ join request notification failed: %v", err)
		}
	}

	return req, nil
}

// ===========================
// 📋 List requests for one trip (officer)
func (s *Service) ListForTrip(ctx context.Context, tripID, secret string) ([]Request, error) {
	if !officer.Verify(secret, s.Passcode) {
		return nil, apierr.ErrNotAuthorized
	}

	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	requests := []Request{}
	for _, row := range rows {
		if strings.TrimSpace(row["tripId"]) != tripID {
			continue
		}
		status := Status(strings.ToUpper(strings.TrimSpace(row["status"])))
		if status == "" {
			status = StatusPending
		}
		requests = append(requests, Request{
			RequestID:   strings.TrimSpace(row["requestId"]),
			SubmittedAt: strings.TrimSpace(row["submittedAt"]),
			TripID:      tripID,
			Name:        strings.TrimSpace(row["name"]),
			Contact:     strings.TrimSpace(row["contact"]),
			Carpool:     strings.TrimSpace(row["carpool"]),
			GearNeeded:  trip.ParseGearCSV(row["gearNeeded"]),
			Notes:       strings.TrimSpace(row["notes"]),
			Status:      status,
		})
	}
	return requests, nil
}

// ===========================
// ✅ Review request (officer): approve or decline
func (s *Service) Review(ctx context.Context, requestID string, in ReviewInput) (Status, error) {
	if !officer.Verify(in.OfficerSecret, s.Passcode) {
		return "", apierr.ErrNotAuthorized
	}
	status, err := ParseReviewStatus(in.Status)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetStatus(ctx, strings.TrimSpace(requestID), status); err != nil {
		return "", err
	}
	return status, nil
}
