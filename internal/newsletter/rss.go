package newsletter

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// DigestBuilder turns an RSS/Atom feed into a draft campaign so an editor
// can start from the latest posts instead of a blank page.
type DigestBuilder struct {
	parser    *gofeed.Parser
	campaigns CampaignRepository
	now       func() time.Time

	// MaxItems caps how many feed entries land in the digest.
	MaxItems int
}

// NewDigestBuilder creates a builder writing drafts to the given repository.
func NewDigestBuilder(campaigns CampaignRepository) *DigestBuilder {
	return &DigestBuilder{
		parser:    gofeed.NewParser(),
		campaigns: campaigns,
		now:       time.Now,
		MaxItems:  5,
	}
}

// BuildDraft fetches the feed and saves a draft digest campaign built from
// its newest entries. The draft is never sent or scheduled here.
func (b *DigestBuilder) BuildDraft(ctx context.Context, feedURL string) (*Campaign, error) {
	feed, err := b.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed %s has no items", feedURL)
	}

	items := feed.Items
	if b.MaxItems > 0 && len(items) > b.MaxItems {
		items = items[:b.MaxItems]
	}

	draft := CampaignDraft{
		Subject:     digestSubject(feed.Title, b.now()),
		Preheader:   fmt.Sprintf("The latest %d posts from %s", len(items), feed.Title),
		HTMLContent: digestHTML(feed.Title, items),
		Segment:     SegmentAll,
	}

	saved, err := b.campaigns.Upsert(ctx, draft, ActionDraft)
	if err != nil {
		return nil, err
	}
	log.Printf("[rss] drafted digest %q with %d items from %s", saved.Subject, len(items), feedURL)
	return saved, nil
}

func digestSubject(feedTitle string, now time.Time) string {
	title := strings.TrimSpace(feedTitle)
	if title == "" {
		title = "Newsletter"
	}
	return fmt.Sprintf("%s Digest — %s", title, now.Format("Jan 2, 2006"))
}

// digestHTML renders feed items as a simple linked list. Everything from the
// feed is escaped; the feed is untrusted input.
func digestHTML(feedTitle string, items []*gofeed.Item) string {
	var sb strings.Builder
	sb.WriteString("<h1>")
	sb.WriteString(html.EscapeString(feedTitle))
	sb.WriteString("</h1>\n<ul>\n")
	for _, item := range items {
		sb.WriteString("  <li><a href=\"")
		sb.WriteString(html.EscapeString(item.Link))
		sb.WriteString("\">")
		sb.WriteString(html.EscapeString(item.Title))
		sb.WriteString("</a>")
		if desc := strings.TrimSpace(item.Description); desc != "" {
			sb.WriteString("<p>")
			sb.WriteString(html.EscapeString(truncate(desc, 200)))
			sb.WriteString("</p>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
