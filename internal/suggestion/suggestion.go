package suggestion

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

const suggestionsSheet = "Suggestions"

var suggestionHeaders = []string{
	"submittedAt",
	"name",
	"email",
	"willingToLead",
	"idea",
	"location",
	"timing",
	"notes",
}

// Input is the public suggestion form payload. Only name and idea are
// required; everything else is context for the officers.
type Input struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	WillingToLead string `json:"willingToLead"`
	Idea          string `json:"idea"`
	Location      string `json:"location"`
	Timing        string `json:"timing"`
	Notes         string `json:"notes"`
}

// RowStore is the slice of the spreadsheet adapter this module needs.
type RowStore interface {
	AppendRow(ctx context.Context, sheetName string, headers []string, values sheetstore.Row) error
}

type Notifier interface {
	Notify(subject, body string) error
}

type Service struct {
	Store  RowStore
	Mailer Notifier

	now func() time.Time
}

func NewService(store RowStore, mailer Notifier) *Service {
	return &Service{Store: store, Mailer: mailer, now: time.Now}
}

// Submit appends the suggestion row and mails the officers when a notify
// address is configured. The mail is best-effort; the row write is what
// counts.
func (s *Service) Submit(ctx context.Context, in Input) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apierr.Required("name")
	}
	idea := strings.TrimSpace(in.Idea)
	if idea == "" {
		return apierr.Required("idea")
	}

	err := s.Store.AppendRow(ctx, suggestionsSheet, suggestionHeaders, sheetstore.Row{
		"submittedAt":   s.now().UTC().Format(time.RFC3339),
		"name":          name,
		"email":         strings.TrimSpace(in.Email),
		"willingToLead": strings.TrimSpace(in.WillingToLead),
		"idea":          idea,
		"location":      strings.TrimSpace(in.Location),
		"timing":        strings.TrimSpace(in.Timing),
		"notes":         strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return err
	}

	if s.Mailer != nil {
		subject := "Trip suggestion: " + idea
		if len(subject) > 140 {
			subject = subject[:140]
		}
		parts := []string{"Name: " + name}
		if in.Email != "" {
			parts = append(parts, "Email: "+strings.TrimSpace(in.Email))
		}
		lead := strings.TrimSpace(in.WillingToLead)
		if lead == "" {
			lead = "n/a"
		}
		parts = append(parts, "Willing to lead: "+lead, "", "Idea: "+idea)
		if in.Location != "" {
			parts = append(parts, "Location: "+strings.TrimSpace(in.Location))
		}
		if in.Timing != "" {
			parts = append(parts, "When: "+strings.TrimSpace(in.Timing))
		}
		if in.Notes != "" {
			parts = append(parts, "", "Notes:\n"+strings.TrimSpace(in.Notes))
		}
		if err := s.Mailer.Notify(subject, strings.Join(parts, "\n")); err != nil {
			log.Printf("⚠️ suggestion notification failed: %v", err)
		}
	}

	return nil
}
