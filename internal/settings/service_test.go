package settings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

// fakeStore is an in-memory SiteSettings sheet.
type fakeStore struct {
	rows    []sheetstore.Row
	missing bool
}

func (f *fakeStore) ListRows(_ context.Context, _ string) ([]sheetstore.Row, error) {
	if f.missing {
		// The Values API answer for an unknown tab.
		return nil, &googleapi.Error{Code: 400, Message: "Unable to parse range: SiteSettings!A:Z"}
	}
	return f.rows, nil
}

func (f *fakeStore) AppendRow(_ context.Context, _ string, _ []string, values sheetstore.Row) error {
	f.missing = false
	f.rows = append(f.rows, values)
	return nil
}

func (f *fakeStore) UpdateCell(_ context.Context, _ string, rowIndex, colIndex int, value string) error {
	f.rows[rowIndex-2][settingsHeaders[colIndex-1]] = value
	return nil
}

func (f *fakeStore) ColumnIndex(_ context.Context, _, columnName string) (int, error) {
	for i, h := range settingsHeaders {
		if h == columnName {
			return i + 1, nil
		}
	}
	return -1, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, "hunter2")
	svc.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// TestGet_defaults verifies every known key is served even with no stored
// rows at all.
func TestGet_defaults(t *testing.T) {
	svc := newTestService(&fakeStore{})

	parsed, err := svc.Get(context.Background())

	require.NoError(t, err)
	require.Empty(t, parsed.Warnings)
	require.Len(t, parsed.Settings, len(defaults))
	require.NotEmpty(t, parsed.Settings["contactEmail"])
}

// TestGet_overlayAndWarnings verifies valid rows override defaults while
// unknown keys, duplicates, and invalid values are skipped with warnings.
func TestGet_overlayAndWarnings(t *testing.T) {
	store := &fakeStore{rows: []sheetstore.Row{
		{"key": "contactEmail", "value": "officers@club.edu"},
		{"key": "wifiPassword", "value": "secret"},
		{"key": "contactEmail", "value": "second@club.edu"},
		{"key": "volLinkUrl", "value": "ftp://club.edu"},
		{"key": "", "value": "ignored quietly"},
	}}
	svc := newTestService(store)

	parsed, err := svc.Get(context.Background())

	require.NoError(t, err)
	require.Equal(t, "officers@club.edu", parsed.Settings["contactEmail"])
	require.Equal(t, defaults["volLinkUrl"], parsed.Settings["volLinkUrl"])

	require.Len(t, parsed.Warnings, 3)
	joined := strings.Join(parsed.Warnings, " | ")
	require.Contains(t, joined, `unsupported SiteSettings key "wifiPassword" at row 3`)
	require.Contains(t, joined, `duplicate SiteSettings key "contactEmail" at row 4`)
	require.Contains(t, joined, `invalid SiteSettings value for "volLinkUrl" at row 5`)
}

// TestGet_missingSheet verifies a missing tab just means defaults.
func TestGet_missingSheet(t *testing.T) {
	svc := newTestService(&fakeStore{missing: true})

	parsed, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, defaults["meetingSchedule"], parsed.Settings["meetingSchedule"])
}

// TestUpdate verifies upsert semantics: existing keys update in place with
// a fresh timestamp, new keys append.
func TestUpdate(t *testing.T) {
	store := &fakeStore{rows: []sheetstore.Row{
		{"key": "contactEmail", "value": "old@club.edu", "updatedAt": "2024-01-01T00:00:00Z"},
	}}
	svc := newTestService(store)

	parsed, err := svc.Update(context.Background(), "hunter2", map[string]string{
		"contactEmail":    "new@club.edu",
		"meetingLocation": "Field House 12",
	})

	require.NoError(t, err)
	require.Equal(t, "new@club.edu", parsed.Settings["contactEmail"])
	require.Equal(t, "Field House 12", parsed.Settings["meetingLocation"])

	require.Len(t, store.rows, 2)
	require.Equal(t, "new@club.edu", store.rows[0]["value"])
	require.Equal(t, "2024-09-01T12:00:00Z", store.rows[0]["updatedAt"])
	require.Equal(t, "meetingLocation", store.rows[1]["key"])
}

func TestUpdate_rejections(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Update(context.Background(), "wrong", map[string]string{"contactEmail": "a@b.edu"})
	require.ErrorIs(t, err, apierr.ErrNotAuthorized)

	_, err = svc.Update(context.Background(), "hunter2", nil)
	require.ErrorContains(t, err, "at least one key")

	_, err = svc.Update(context.Background(), "hunter2", map[string]string{"wifiPassword": "x"})
	require.ErrorContains(t, err, "unsupported setting key: wifiPassword")

	_, err = svc.Update(context.Background(), "hunter2", map[string]string{"contactEmail": "not-an-email"})
	require.ErrorContains(t, err, "valid email")
}

func TestNormalizeValue(t *testing.T) {
	got, err := NormalizeValue("groupMeUrl", " https://groupme.com/join_group/abc ")
	require.NoError(t, err)
	require.Equal(t, "https://groupme.com/join_group/abc", got)

	_, err = NormalizeValue("groupMeUrl", "http://groupme.com/join_group/abc")
	require.ErrorContains(t, err, "https")

	_, err = NormalizeValue("meetingNote", strings.Repeat("x", 801))
	require.ErrorContains(t, err, "too long")

	_, err = NormalizeValue("meetingNote", "  ")
	require.ErrorContains(t, err, "meetingNote is required")
}
