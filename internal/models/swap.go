package models

import (
	"time"

	"github.com/google/uuid"
)

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCompleted SwapStatus = "completed"
)

// SwapDirection classifies a request relative to a viewer. It is always
// derived from the requester/target ids, never stored.
type SwapDirection string

const (
	SwapDirectionReceived SwapDirection = "received"
	SwapDirectionSent     SwapDirection = "sent"
)

type SwapRequest struct {
	ID           uuid.UUID  `json:"id"`
	RequesterID  uuid.UUID  `json:"requester_id"`
	TargetID     uuid.UUID  `json:"target_id"`
	SkillOffered string     `json:"skill_offered"`
	SkillWanted  string     `json:"skill_wanted"`
	Message      string     `json:"message,omitempty"`
	Status       SwapStatus `json:"status"`
	Rating       *int       `json:"rating,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Populated for list responses so the UI can render the other party
	// without a second round trip.
	Requester *PublicProfile `json:"requester,omitempty"`
	Target    *PublicProfile `json:"target,omitempty"`
}

type CreateSwapParams struct {
	RequesterID  uuid.UUID
	TargetID     uuid.UUID
	SkillOffered string
	SkillWanted  string
	Message      string
}

// DirectionFor reports how viewerID relates to the request, or "" if the
// viewer is neither party.
func (s *SwapRequest) DirectionFor(viewerID uuid.UUID) SwapDirection {
	switch viewerID {
	case s.TargetID:
		return SwapDirectionReceived
	case s.RequesterID:
		return SwapDirectionSent
	}
	return ""
}

// SwapCounts carries the badge counters for the requests page tabs.
type SwapCounts struct {
	Received int `json:"received"`
	Sent     int `json:"sent"`
}
