// internal/model/update.go
package model

import "time"

// Update is a progress note posted by a campaign owner.
type Update struct {
	ID         int64     `db:"id" json:"id"`
	CampaignID int64     `db:"campaign_id" json:"campaign_id"`
	Title      string    `db:"title" json:"title"`
	Contents   string    `db:"contents" json:"contents"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
