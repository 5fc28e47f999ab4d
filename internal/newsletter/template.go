package newsletter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// TemplateService renders campaign content through the Liquid template
// language for per-recipient personalization. Parsed templates are cached
// by source text.
type TemplateService struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateService creates a template service with the portal's custom
// filters registered.
func NewTemplateService() *TemplateService {
	ts := &TemplateService{engine: liquid.NewEngine()}
	ts.registerFilters()
	return ts
}

func (ts *TemplateService) registerFilters() {
	// Fallback for missing personalization vars: {{ first_name | default: "there" }}
	ts.engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	// {{ name | capitalize }}
	ts.engine.RegisterFilter("capitalize", func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	})
}

// Render renders a template string against the given variables.
func (ts *TemplateService) Render(source string, vars map[string]interface{}) (string, error) {
	tmpl, err := ts.parse(source)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	out, err := tmpl.RenderString(vars)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// RenderForRecipient renders a campaign body for one recipient, exposing
// the recipient email and the campaign subject/preheader as variables.
func (ts *TemplateService) RenderForRecipient(body, subject, preheader, email string) (string, error) {
	return ts.Render(body, map[string]interface{}{
		"email":     email,
		"subject":   subject,
		"preheader": preheader,
	})
}

func (ts *TemplateService) parse(source string) (*liquid.Template, error) {
	if cached, ok := ts.cache.Load(source); ok {
		return cached.(*liquid.Template), nil
	}
	tmpl, err := ts.engine.ParseString(source)
	if err != nil {
		return nil, err
	}
	ts.cache.Store(source, tmpl)
	return tmpl, nil
}
