package newsletter

// Summary aggregates performance across sent campaigns. Rates are carried
// at full precision; the presentation layer rounds for display.
type Summary struct {
	AvgOpenRate            float64 `json:"avg_open_rate"`
	AvgClickRate           float64 `json:"avg_click_rate"`
	LastCampaignRecipients int     `json:"last_campaign_recipients"`
}

// Aggregate computes the average open and click rates over sent campaigns
// and the recipient count of the most recently sent one. Draft and
// scheduled campaigns are ignored; with no sent campaigns everything is 0.
func Aggregate(campaigns []Campaign) Summary {
	var sum Summary
	var openTotal, clickTotal float64
	sent := 0

	var last *Campaign
	for i := range campaigns {
		c := &campaigns[i]
		if c.Status != StatusSent {
			continue
		}
		sent++
		if c.OpenRate != nil {
			openTotal += *c.OpenRate
		}
		if c.ClickRate != nil {
			clickTotal += *c.ClickRate
		}
		if c.SentAt != nil && (last == nil || last.SentAt == nil || c.SentAt.After(*last.SentAt)) {
			last = c
		}
	}

	if sent > 0 {
		sum.AvgOpenRate = openTotal / float64(sent)
		sum.AvgClickRate = clickTotal / float64(sent)
	}
	if last != nil {
		sum.LastCampaignRecipients = last.Recipients
	}
	return sum
}
