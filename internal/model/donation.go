// internal/model/donation.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnonymousDonorName replaces the donor name of anonymous donations in public listings.
const AnonymousDonorName = "Anonymous"

type Donation struct {
	ID          int64           `db:"id" json:"id"`
	CampaignID  int64           `db:"campaign_id" json:"campaign_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	DonorName   string          `db:"donor_name" json:"donor_name"`
	DonorEmail  *string         `db:"donor_email" json:"donor_email,omitempty"`
	IsAnonymous bool            `db:"is_anonymous" json:"is_anonymous"`
	Message     *string         `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Public returns a copy safe to show to anyone: anonymous donors lose name and email.
func (d Donation) Public() Donation {
	if d.IsAnonymous {
		d.DonorName = AnonymousDonorName
		d.DonorEmail = nil
	}
	return d
}
