package newsletter

import "time"

// NewSignupWindow is how far back a subscription counts as a "new" signup.
const NewSignupWindow = 30 * 24 * time.Hour

// RecipientCount resolves a segment to the number of matching subscribers
// at the given instant. Pure and deterministic: identical inputs always
// yield the same count.
//
//	all    → every subscriber
//	active → status == active
//	new    → active AND subscribed within the last 30 days
//
// Unknown segments count nothing.
func RecipientCount(segment Segment, subs []Subscriber, now time.Time) int {
	switch segment {
	case SegmentAll:
		return len(subs)
	case SegmentActive:
		n := 0
		for _, s := range subs {
			if s.Status == SubscriberActive {
				n++
			}
		}
		return n
	case SegmentNew:
		cutoff := now.Add(-NewSignupWindow)
		n := 0
		for _, s := range subs {
			if s.Status == SubscriberActive && !s.SubscribedAt.Before(cutoff) {
				n++
			}
		}
		return n
	default:
		return 0
	}
}
