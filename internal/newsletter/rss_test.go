package newsletter

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestDigestSubject(t *testing.T) {
	now := time.Date(2026, 6, 3, 8, 0, 0, 0, time.UTC)

	if got := digestSubject("Portal Blog", now); got != "Portal Blog Digest — Jun 3, 2026" {
		t.Errorf("digestSubject = %q", got)
	}
	if got := digestSubject("  ", now); got != "Newsletter Digest — Jun 3, 2026" {
		t.Errorf("digestSubject with blank title = %q", got)
	}
}

func TestDigestHTMLEscapes(t *testing.T) {
	items := []*gofeed.Item{
		{Title: "Tips & <tricks>", Link: "https://example.com/a?x=1&y=2", Description: "short"},
		{Title: "Plain", Link: "https://example.com/b"},
	}

	out := digestHTML("Blog <beta>", items)

	if !strings.Contains(out, "Tips &amp; &lt;tricks&gt;") {
		t.Errorf("item title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "Blog &lt;beta&gt;") {
		t.Errorf("feed title not escaped:\n%s", out)
	}
	if strings.Contains(out, "<tricks>") {
		t.Errorf("raw feed markup leaked into the digest:\n%s", out)
	}
	if !strings.Contains(out, `href="https://example.com/b"`) {
		t.Errorf("missing link:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("é", 250)
	got := truncate(long, 200)
	if len([]rune(got)) != 201 { // 200 runes + ellipsis
		t.Errorf("truncate length = %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate missing ellipsis: %q", got)
	}
}
