package queue

// CampaignEvent is published on the campaign.* topics.
type CampaignEvent struct {
	CampaignID int64  `json:"campaign_id"`
	UserID     int64  `json:"user_id"`
	Slug       string `json:"slug"`
	Status     string `json:"status"`
}

// DonationEvent is published on donation.created. Amount is the decimal
// string so no precision is lost on the wire.
type DonationEvent struct {
	DonationID int64  `json:"donation_id"`
	CampaignID int64  `json:"campaign_id"`
	Amount     string `json:"amount"`
}

type UpdateEvent struct {
	UpdateID   int64  `json:"update_id"`
	CampaignID int64  `json:"campaign_id"`
	Title      string `json:"title"`
}
