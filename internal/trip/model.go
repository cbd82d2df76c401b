package trip

import (
	"encoding/json"
	"strings"

	"github.com/outingclub/trips-backend/internal/apierr"
)

// SignupStatus controls what the join form on the site offers for a trip.
type SignupStatus string

const (
	StatusRequestOpen SignupStatus = "REQUEST_OPEN"
	StatusMeetingOnly SignupStatus = "MEETING_ONLY"
	StatusFull        SignupStatus = "FULL"
)

// ParseSignupStatus validates a stored or submitted status. Anything
// outside the three known values is rejected; rows are never silently
// defaulted.
func ParseSignupStatus(value string) (SignupStatus, error) {
	status := SignupStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusRequestOpen, StatusMeetingOnly, StatusFull:
		return status, nil
	}
	if value == "" {
		return "", apierr.Validation("invalid signupStatus: (missing)")
	}
	return "", apierr.Validation("invalid signupStatus: " + strings.TrimSpace(value))
}

// ============================
// 🔷 Trip Model
type Trip struct {
	TripID        string       `json:"tripId"`
	EventID       string       `json:"eventId,omitempty"`
	Title         string       `json:"title"`
	Activity      string       `json:"activity,omitempty"`
	Start         string       `json:"start"` // RFC3339
	End           string       `json:"end,omitempty"`
	Location      string       `json:"location"`
	LeaderName    string       `json:"leaderName,omitempty"`
	LeaderContact string       `json:"leaderContact,omitempty"`
	Difficulty    string       `json:"difficulty"`
	MeetTime      string       `json:"meetTime,omitempty"`
	MeetPlace     string       `json:"meetPlace,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	GearAvailable []string     `json:"gearAvailable"`
	IsAllDay      bool         `json:"isAllDay"`
	SignupStatus  SignupStatus `json:"signupStatus"`
}

// PublicTrip is the subset exposed on the unauthenticated listing.
type PublicTrip struct {
	TripID        string       `json:"tripId"`
	Title         string       `json:"title"`
	Start         string       `json:"start"`
	Location      string       `json:"location"`
	Difficulty    string       `json:"difficulty"`
	GearAvailable []string     `json:"gearAvailable"`
	IsAllDay      bool         `json:"isAllDay"`
	SignupStatus  SignupStatus `json:"signupStatus"`
}

// ============================
// 🟡 Trip Input (create + update)
type Input struct {
	OfficerSecret string   `json:"officerSecret"`
	Title         string   `json:"title"`
	Activity      string   `json:"activity"`
	Location      string   `json:"location"`
	LeaderName    string   `json:"leaderName"`
	LeaderContact string   `json:"leaderContact"`
	Difficulty    string   `json:"difficulty"`
	MeetTime      string   `json:"meetTime"`
	MeetPlace     string   `json:"meetPlace"`
	Notes         string   `json:"notes"`
	GearAvailable GearList `json:"gearAvailable"`
	SignupStatus  string   `json:"signupStatus"`

	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD, defaults to StartDate
	StartTime string `json:"startTime"` // HH:MM, empty means all-day
	EndTime   string `json:"endTime"`   // HH:MM
}

// GearList accepts either a JSON array of tags or a single comma-separated
// string; the officer form sends an array, older stored rows are CSV.
type GearList []string

func (g *GearList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*g = NormalizeGear(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = ParseGearCSV(s)
	return nil
}

// allowedGear is the fixed club inventory; everything else is dropped.
var allowedGear = map[string]bool{
	"tent":         true,
	"sleeping bag": true,
	"sleeping pad": true,
	"stove":        true,
	"headlamp":     true,
}

// NormalizeGear lowercases, filters to the allowed tags and deduplicates
// while preserving first-seen order.
func NormalizeGear(values []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		tag := strings.ToLower(strings.TrimSpace(v))
		if !allowedGear[tag] || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// ParseGearCSV normalizes a stored comma-separated gear cell.
func ParseGearCSV(s string) []string {
	return NormalizeGear(strings.Split(s, ","))
}
