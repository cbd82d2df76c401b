package trip

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestBuildDescription_roundTrip verifies ExtractTripID recovers the id from
// a freshly built description, whatever optional fields are set.
func TestBuildDescription_roundTrip(t *testing.T) {
	desc := buildDescription(descriptionFields{
		TripID:        "2024-09-10-sunset-hike-k3q9",
		Activity:      "Hiking",
		Difficulty:    "Moderate",
		GearAvailable: []string{"headlamp", "stove"},
		MeetTime:      "17:45",
		MeetPlace:     "Student Center lot",
		LeaderName:    "Sam",
		LeaderContact: "sam@example.edu",
		RequestURL:    "https://club.example.edu/trips.html?tripId=2024-09-10-sunset-hike-k3q9",
		Notes:         "Bring water.",
	})

	require.Equal(t, "2024-09-10-sunset-hike-k3q9", ExtractTripID(desc))
	require.Contains(t, desc, "Club gear available: headlamp, stove")
	require.Contains(t, desc, "Join: https://club.example.edu/trips.html?tripId=2024-09-10-sunset-hike-k3q9")
	require.Contains(t, desc, "Notes:\nBring water.")
}

func TestBuildDescription_minimal(t *testing.T) {
	desc := buildDescription(descriptionFields{
		TripID:     "2024-06-01-trip-abcd",
		RequestURL: "https://club.example.edu/trips.html?tripId=2024-06-01-trip-abcd",
	})

	require.Equal(t, "2024-06-01-trip-abcd", ExtractTripID(desc))
	require.NotContains(t, desc, "Activity:")
	require.NotContains(t, desc, "Notes:")
}

// TestExtractTripID_caseInsensitive verifies the marker survives clients
// that re-case description text.
func TestExtractTripID_caseInsensitive(t *testing.T) {
	require.Equal(t, "abc-123", ExtractTripID("something\ntrip id: abc-123\nmore"))
	require.Equal(t, "abc-123", ExtractTripID("TRIP ID:   abc-123  "))
}

func TestExtractTripID_foreignEvent(t *testing.T) {
	require.Equal(t, "", ExtractTripID("Weekly officer meeting agenda"))
	require.Equal(t, "", ExtractTripID(""))
}

// TestNewTripID verifies the id shape: local start date, slug capped at 32
// chars, 4-char suffix.
func TestNewTripID(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	start := time.Date(2024, 9, 10, 18, 30, 0, 0, loc)

	id := NewTripID(start, "Sunset Hike!", loc)
	require.Regexp(t, regexp.MustCompile(`^2024-09-10-sunset-hike-[a-z0-9]{4}$`), id)

	long := NewTripID(start, strings.Repeat("very long title ", 10), loc)
	parts := strings.TrimPrefix(long, "2024-09-10-")
	slug := parts[:len(parts)-5]
	require.LessOrEqual(t, len(slug), 32)

	require.Regexp(t, regexp.MustCompile(`^2024-09-10-trip-[a-z0-9]{4}$`), NewTripID(start, "!!!", loc))
}

// TestNewTripID_unique covers the suffix doing its job for repeat trips.
func TestNewTripID_unique(t *testing.T) {
	loc := time.UTC
	start := time.Date(2024, 9, 10, 0, 0, 0, 0, loc)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[NewTripID(start, "Weekly Paddle", loc)] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestJoinURL(t *testing.T) {
	require.Equal(t,
		"https://club.example.edu/trips.html?tripId=2024-09-10-sunset-hike-k3q9",
		JoinURL("https://club.example.edu", "2024-09-10-sunset-hike-k3q9"))
	require.Equal(t,
		"https://club.example.edu/trips.html?tripId=a%2Fb",
		JoinURL("https://club.example.edu", "a/b"))
}
