package settings

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/outingclub/trips-backend/internal/apierr"
)

// maxMessageLen caps free-text settings so a bad paste cannot blow up the
// public site layout.
const maxMessageLen = 800

// Defaults are served whenever the SiteSettings sheet is absent or a key
// has no valid stored value.
var defaults = map[string]string{
	"contactEmail":    "officers@outingclub.org",
	"volLinkUrl":      "https://engage.example.edu/organization/outingclub",
	"groupMeUrl":      "https://groupme.com/join_group/outingclub",
	"meetingSchedule": "Every Week - 7:00 PM",
	"meetingLocation": "Student Center 101",
	"meetingNote": "We meet every week at 7pm. This is where trips are discussed, " +
		"gear is handed out and returned, and members connect before adventures. " +
		"Meeting attendance is considered for limited-capacity trips.",
	"requestIntroMessage":    "Submit your request below. Officers review requests before confirming rosters.",
	"meetingOnlyMessage":     "This trip is meeting sign-up only. Please attend a weekly meeting to request a spot.",
	"fullTripMessage":        "This trip is currently full. We appreciate your interest and hope you can join a future trip.",
	"requestReceivedMessage": "Request received. Officers will review it; this is not a confirmed spot.",
}

// KnownKey reports whether a settings key is supported.
func KnownKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// NormalizeValue validates one setting per its key: emails must parse,
// link keys must be https URLs, everything else is a bounded message.
func NormalizeValue(key, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", apierr.Required(key)
	}
	switch key {
	case "contactEmail":
		if _, err := mail.ParseAddress(value); err != nil {
			return "", apierr.Validation(key + " must be a valid email address")
		}
		return value, nil
	case "volLinkUrl", "groupMeUrl":
		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" {
			return "", apierr.Validation(key + " must be a valid URL")
		}
		if parsed.Scheme != "https" {
			return "", apierr.Validation(key + " must use https://")
		}
		return parsed.String(), nil
	default:
		if len(value) > maxMessageLen {
			return "", apierr.Validation(key + " is too long (max 800 characters)")
		}
		return value, nil
	}
}
