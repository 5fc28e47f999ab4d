// Package theme manages the portal's design tokens.
package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

var (
	ErrInvalidHSL    = errors.New("invalid HSL value, expected \"H S% L%\"")
	ErrInvalidHex    = errors.New("invalid hex color, expected \"#RRGGBB\"")
	ErrInvalidRadius = errors.New("radius must be between 0 and 32")
)

// Tokens are the themeable design values exposed in settings.
type Tokens struct {
	PrimaryHSL   string `json:"primary_hsl"`
	AccentHSL    string `json:"accent_hsl"`
	RadiusPx     int    `json:"radius_px"`
	SuccessColor string `json:"success_color"`
	WarningColor string `json:"warning_color"`
	ErrorColor   string `json:"error_color"`
}

// Defaults returns the out-of-the-box token set.
func Defaults() Tokens {
	return Tokens{
		PrimaryHSL:   "262 83% 58%",
		AccentHSL:    "240 5% 96%",
		RadiusPx:     8,
		SuccessColor: "#10B981",
		WarningColor: "#F59E0B",
		ErrorColor:   "#EF4444",
	}
}

var (
	hslPattern = regexp.MustCompile(`^\d{1,3} \d{1,3}% \d{1,3}%$`)
	hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Validate checks every token value.
func (t Tokens) Validate() error {
	if !hslPattern.MatchString(t.PrimaryHSL) || !hslPattern.MatchString(t.AccentHSL) {
		return ErrInvalidHSL
	}
	if t.RadiusPx < 0 || t.RadiusPx > 32 {
		return ErrInvalidRadius
	}
	for _, c := range []string{t.SuccessColor, t.WarningColor, t.ErrorColor} {
		if !hexPattern.MatchString(c) {
			return ErrInvalidHex
		}
	}
	return nil
}

// CSSVariables renders the tokens as a CSS custom-property block for the
// frontend to inject.
func (t Tokens) CSSVariables() string {
	return fmt.Sprintf(`:root {
  --primary: %s;
  --accent: %s;
  --radius: %dpx;
  --success: %s;
  --warning: %s;
  --error: %s;
}`, t.PrimaryHSL, t.AccentHSL, t.RadiusPx, t.SuccessColor, t.WarningColor, t.ErrorColor)
}

// Store holds the active token set. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tokens Tokens
}

// NewStore creates a store with the default tokens.
func NewStore() *Store {
	return &Store{tokens: Defaults()}
}

// Get returns the active tokens.
func (s *Store) Get() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

// Update validates and replaces the active tokens.
func (s *Store) Update(tokens Tokens) error {
	if err := tokens.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	return nil
}

// Reset restores the defaults.
func (s *Store) Reset() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Defaults()
	return s.tokens
}
