// internal/model/lifecycle.go
package model

import "time"

// CampaignStatus is the funding lifecycle of a campaign.
//
//	pending -> active -> completed
//	pending | active -> cancelled
//
// completed and cancelled are terminal.
type CampaignStatus string

const (
	StatusPending   CampaignStatus = "pending"
	StatusActive    CampaignStatus = "active"
	StatusCompleted CampaignStatus = "completed"
	StatusCancelled CampaignStatus = "cancelled"
)

var statusTransitions = map[CampaignStatus][]CampaignStatus{
	StatusPending: {StatusActive, StatusCancelled},
	StatusActive:  {StatusCompleted, StatusCancelled},
}

func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s CampaignStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether s may move to next. Staying put is allowed.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApprovalStatus is the moderation state, independent of the funding lifecycle.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (a ApprovalStatus) Valid() bool {
	switch a {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

func (a ApprovalStatus) Terminal() bool {
	return a == ApprovalApproved || a == ApprovalRejected
}

func (a ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	if !a.Valid() || !next.Valid() {
		return false
	}
	if a == next {
		return true
	}
	return a == ApprovalPending
}

type Source string

const (
	SourceWeb      Source = "web"
	SourceMobile   Source = "mobile"
	SourceWhatsApp Source = "whatsapp"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWeb, SourceMobile, SourceWhatsApp:
		return true
	}
	return false
}

// DefaultCampaignDuration is how long a campaign runs when no end date is given.
const DefaultCampaignDuration = 90 * 24 * time.Hour

// DefaultEndDate returns the end date for a campaign created at createdAt.
func DefaultEndDate(createdAt time.Time) time.Time {
	return createdAt.Add(DefaultCampaignDuration)
}

// AcceptsDonations reports whether donations may still be made.
func (c *Campaign) AcceptsDonations() bool {
	return !c.Status.Terminal()
}
