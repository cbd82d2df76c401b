package trip

import (
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// The "Trip ID:" line inside an event description is the only link between
// a calendar event and its sheet row; everything else in the description is
// for humans.
var tripIDMarker = regexp.MustCompile(`(?i)Trip ID:\s*([^\n]+)`)

// descriptionFields feeds BuildDescription. Empty fields produce no line.
type descriptionFields struct {
	TripID        string
	Activity      string
	MeetTime      string
	MeetPlace     string
	LeaderName    string
	LeaderContact string
	Difficulty    string
	GearAvailable []string
	RequestURL    string
	Notes         string
}

// buildDescription renders the calendar event body. The layout is fixed so
// ExtractTripID always finds the marker line, whatever else is filled in.
func buildDescription(f descriptionFields) string {
	lines := []string{"Club Trip", "", "Trip ID: " + f.TripID}
	if f.Activity != "" {
		lines = append(lines, "Activity: "+f.Activity)
	}
	if f.Difficulty != "" {
		lines = append(lines, "Difficulty: "+f.Difficulty)
	}
	if len(f.GearAvailable) > 0 {
		lines = append(lines, "Club gear available: "+strings.Join(f.GearAvailable, ", "))
	}
	lines = append(lines, "")
	if f.MeetTime != "" {
		lines = append(lines, "Meet time: "+f.MeetTime)
	}
	if f.MeetPlace != "" {
		lines = append(lines, "Meet place: "+f.MeetPlace)
	}
	if f.LeaderName != "" {
		lines = append(lines, "Leader: "+f.LeaderName)
	}
	if f.LeaderContact != "" {
		lines = append(lines, "Leader contact: "+f.LeaderContact)
	}
	lines = append(lines, "", "Join: "+f.RequestURL)
	if f.Notes != "" {
		lines = append(lines, "", "Notes:", f.Notes)
	}
	return strings.Join(lines, "\n")
}

// ExtractTripID pulls the trip id out of an event description. A missing
// marker yields "" rather than an error: foreign events on the calendar are
// simply not ours.
func ExtractTripID(description string) string {
	m := tripIDMarker.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

const idSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewTripID builds the human-legible id: local start date, slugified title
// capped at 32 chars, and a 4-char random suffix so ids are never reused
// even for repeat trips.
func NewTripID(start time.Time, title string, loc *time.Location) string {
	datePart := start.In(loc).Format("2006-01-02")

	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) > 32 {
		slug = strings.Trim(slug[:32], "-")
	}
	if slug == "" {
		slug = "trip"
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))]
	}

	return datePart + "-" + slug + "-" + string(suffix)
}

// JoinURL is the public page where members request a spot on a trip.
func JoinURL(siteBaseURL, tripID string) string {
	return siteBaseURL + "/trips.html?tripId=" + url.QueryEscape(tripID)
}
