package signup

import (
	"strings"

	"github.com/outingclub/trips-backend/internal/apierr"
)

// Status of a join request. Requests start PENDING; officers move them to
// APPROVED or DECLINED at a weekly meeting.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
)

// ParseReviewStatus validates an officer's decision. PENDING is not a
// valid target; a review always resolves the request one way or the other.
func ParseReviewStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusApproved, StatusDeclined:
		return status, nil
	}
	return "", apierr.Validation("status must be APPROVED or DECLINED")
}

// Request is one member's ask to join a trip.
type Request struct {
	RequestID   string   `json:"requestId"`
	SubmittedAt string   `json:"submittedAt"`
	TripID      string   `json:"tripId"`
	Name        string   `json:"name"`
	Contact     string   `json:"contact"`
	Carpool     string   `json:"carpool,omitempty"`
	GearNeeded  []string `json:"gearNeeded"`
	Notes       string   `json:"notes,omitempty"`
	Status      Status   `json:"status"`
}

// SubmitInput is the public join form payload.
type SubmitInput struct {
	TripID     string   `json:"tripId"`
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	Carpool    string   `json:"carpool"`
	GearNeeded []string `json:"gearNeeded"`
	Notes      string   `json:"notes"`
}

// ReviewInput is the officer decision payload.
type ReviewInput struct {
	OfficerSecret string `json:"officerSecret"`
	Status        string `json:"status"`
}
