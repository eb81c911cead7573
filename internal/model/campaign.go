// internal/model/campaign.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Campaign struct {
	ID             int64           `db:"id" json:"id"`
	UserID         int64           `db:"user_id" json:"user_id"`
	Slug           string          `db:"slug" json:"slug"`
	Title          string          `db:"title" json:"title"`
	Description    *string         `db:"description" json:"description,omitempty"`
	Story          *string         `db:"story" json:"story,omitempty"`
	CoverImage     *string         `db:"cover_image" json:"cover_image,omitempty"`
	GoalAmount     decimal.Decimal `db:"goal_amount" json:"goal_amount"`
	IsUrgent       bool            `db:"is_urgent" json:"is_urgent"`
	IsFeatured     bool            `db:"is_featured" json:"is_featured"`
	CategoryID     *int64          `db:"category_id" json:"category_id,omitempty"`
	Status         CampaignStatus  `db:"status" json:"status"`
	ApprovalStatus ApprovalStatus  `db:"approval_status" json:"approval_status"`
	Source         Source          `db:"source" json:"source"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	EndDate        *time.Time      `db:"end_date" json:"end_date,omitempty"`
}

// CampaignSummary is a list item with its derived aggregates.
type CampaignSummary struct {
	ID              int64           `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	CoverImage      *string         `json:"cover_image"`
	GoalAmount      decimal.Decimal `json:"goal_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	ProgressPercent float64         `json:"progress_percent"`
	CreatorName     string          `json:"creator_name"`
	CategoryTitle   *string         `json:"category_title"`
	IsUrgent        bool            `json:"is_urgent"`
	IsFeatured      bool            `json:"is_featured"`
	Status          CampaignStatus  `json:"status"`
}

// CampaignDetails is a single campaign with aggregates and its updates.
type CampaignDetails struct {
	Campaign
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	ProgressPercent float64         `json:"progress_percent"`
	CreatorName     string          `json:"creator_name"`
	CategoryTitle   *string         `json:"category_title"`
	TotalDonations  int             `json:"total_donations"`
	TotalUpdates    int             `json:"total_updates"`
	Updates         []Update        `json:"updates"`
}

// CampaignFilter narrows campaign listings. Zero values mean "any".
type CampaignFilter struct {
	CategoryID     *int64
	UserID         *int64
	Status         CampaignStatus
	ApprovalStatus ApprovalStatus
	IsUrgent       *bool
	IsFeatured     *bool
	Query          string
}

// CampaignChanges lists the columns a partial update writes. Nil means unchanged.
type CampaignChanges struct {
	Title          *string
	Description    *string
	Story          *string
	CoverImage     *string
	GoalAmount     *decimal.Decimal
	IsUrgent       *bool
	IsFeatured     *bool
	CategoryID     *int64
	EndDate        *time.Time
	Status         *CampaignStatus
	ApprovalStatus *ApprovalStatus
}

// Apply writes the non-nil changes onto c.
func (ch CampaignChanges) Apply(c *Campaign) {
	if ch.Title != nil {
		c.Title = *ch.Title
	}
	if ch.Description != nil {
		c.Description = ch.Description
	}
	if ch.Story != nil {
		c.Story = ch.Story
	}
	if ch.CoverImage != nil {
		c.CoverImage = ch.CoverImage
	}
	if ch.GoalAmount != nil {
		c.GoalAmount = *ch.GoalAmount
	}
	if ch.IsUrgent != nil {
		c.IsUrgent = *ch.IsUrgent
	}
	if ch.IsFeatured != nil {
		c.IsFeatured = *ch.IsFeatured
	}
	if ch.CategoryID != nil {
		c.CategoryID = ch.CategoryID
	}
	if ch.EndDate != nil {
		c.EndDate = ch.EndDate
	}
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	if ch.ApprovalStatus != nil {
		c.ApprovalStatus = *ch.ApprovalStatus
	}
}
