package newsletter

import (
	"strings"
	"testing"
)

func TestTemplateRender(t *testing.T) {
	ts := NewTemplateService()

	out, err := ts.Render("Hello {{ name }}!", map[string]interface{}{"name": "Ada"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hello Ada!" {
		t.Errorf("Render = %q", out)
	}
}

func TestTemplateDefaultFilter(t *testing.T) {
	ts := NewTemplateService()

	out, err := ts.Render(`Hi {{ first_name | default: "there" }}`, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hi there" {
		t.Errorf("Render = %q", out)
	}

	out, err = ts.Render(`Hi {{ first_name | default: "there" }}`, map[string]interface{}{"first_name": "Grace"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hi Grace" {
		t.Errorf("Render = %q", out)
	}
}

func TestTemplateCapitalizeFilter(t *testing.T) {
	ts := NewTemplateService()

	out, err := ts.Render(`{{ name | capitalize }}`, map[string]interface{}{"name": "aDA"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Ada" {
		t.Errorf("Render = %q", out)
	}
}

func TestTemplateParseError(t *testing.T) {
	ts := NewTemplateService()

	if _, err := ts.Render("{{ broken", nil); err == nil {
		t.Error("expected parse error for unterminated tag")
	}
}

func TestRenderForRecipient(t *testing.T) {
	ts := NewTemplateService()

	out, err := ts.RenderForRecipient(
		"<p>{{ subject }} for {{ email }}</p>",
		"March issue", "preview text", "reader@example.com")
	if err != nil {
		t.Fatalf("RenderForRecipient: %v", err)
	}
	if !strings.Contains(out, "March issue") || !strings.Contains(out, "reader@example.com") {
		t.Errorf("RenderForRecipient = %q", out)
	}
}
