package suggestion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outingclub/trips-backend/internal/sheetstore"
)

type fakeStore struct {
	rows []sheetstore.Row
}

func (f *fakeStore) AppendRow(_ context.Context, _ string, _ []string, values sheetstore.Row) error {
	f.rows = append(f.rows, values)
	return nil
}

type fakeNotifier struct {
	subject string
	body    string
}

func (f *fakeNotifier) Notify(subject, body string) error {
	f.subject = subject
	f.body = body
	return nil
}

func newTestService(store *fakeStore, mailer Notifier) *Service {
	svc := NewService(store, mailer)
	svc.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// TestSubmit verifies the row lands and the officer mail carries the
// filled-in fields.
func TestSubmit(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeNotifier{}
	svc := newTestService(store, mailer)

	err := svc.Submit(context.Background(), Input{
		Name:     " Casey ",
		Email:    "casey@example.edu",
		Idea:     "Moonlight paddle",
		Location: "Lake",
		Timing:   "October",
	})

	require.NoError(t, err)
	require.Len(t, store.rows, 1)
	require.Equal(t, "Casey", store.rows[0]["name"])
	require.Equal(t, "Moonlight paddle", store.rows[0]["idea"])
	require.Equal(t, "2024-09-01T12:00:00Z", store.rows[0]["submittedAt"])

	require.Equal(t, "Trip suggestion: Moonlight paddle", mailer.subject)
	require.Contains(t, mailer.body, "Email: casey@example.edu")
	require.Contains(t, mailer.body, "When: October")
	require.Contains(t, mailer.body, "Willing to lead: n/a")
}

func TestSubmit_requiredFields(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)

	err := svc.Submit(context.Background(), Input{Idea: "Paddle"})
	require.ErrorContains(t, err, "name is required")

	err = svc.Submit(context.Background(), Input{Name: "Casey"})
	require.ErrorContains(t, err, "idea is required")
}

// TestSubmit_subjectCap verifies long ideas do not blow up the mail subject.
func TestSubmit_subjectCap(t *testing.T) {
	mailer := &fakeNotifier{}
	svc := newTestService(&fakeStore{}, mailer)

	err := svc.Submit(context.Background(), Input{
		Name: "Casey",
		Idea: strings.Repeat("long idea ", 30),
	})

	require.NoError(t, err)
	require.LessOrEqual(t, len(mailer.subject), 140)
}
