// Package pricing manages the portal's subscription plan catalogue.
package pricing

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNameRequired  = errors.New("plan name is required")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNotFound      = errors.New("plan not found")
)

// Plan is a purchasable subscription tier. Prices are stored in cents to
// avoid float arithmetic on money.
type Plan struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	PriceMonthlyCents int       `json:"price_monthly_cents"`
	PriceYearlyCents  int       `json:"price_yearly_cents"`
	Features          []string  `json:"features,omitempty"`
	Popular           bool      `json:"popular"`
	CTA               string    `json:"cta,omitempty"`
}

// YearlyEffectiveMonthlyCents is the per-month price when billed yearly,
// floored to whole cents.
func (p Plan) YearlyEffectiveMonthlyCents() int {
	return p.PriceYearlyCents / 12
}

// Input holds the editable fields of a plan.
type Input struct {
	Name              string
	Description       string
	PriceMonthlyCents int
	PriceYearlyCents  int
	Features          []string
	Popular           bool
	CTA               string
}

// Store is the in-memory plan catalogue. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	plans []Plan
}

// NewStore creates an empty plan store.
func NewStore() *Store {
	return &Store{}
}

func validate(input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}
	if input.PriceMonthlyCents < 0 || input.PriceYearlyCents < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Create adds a new plan at the end of the catalogue.
func (s *Store) Create(input Input) (*Plan, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan := Plan{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		PriceMonthlyCents: input.PriceMonthlyCents,
		PriceYearlyCents:  input.PriceYearlyCents,
		Features:          input.Features,
		Popular:           input.Popular,
		CTA:               input.CTA,
	}
	s.plans = append(s.plans, plan)
	return &plan, nil
}

// Update replaces the editable fields of a plan.
func (s *Store) Update(id string, input Input) (*Plan, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID.String() == id {
			s.plans[i].Name = strings.TrimSpace(input.Name)
			s.plans[i].Description = input.Description
			s.plans[i].PriceMonthlyCents = input.PriceMonthlyCents
			s.plans[i].PriceYearlyCents = input.PriceYearlyCents
			s.plans[i].Features = input.Features
			s.plans[i].Popular = input.Popular
			s.plans[i].CTA = input.CTA
			cp := s.plans[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns the catalogue in display order.
func (s *Store) List() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Get returns a plan by ID.
func (s *Store) Get(id string) (*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.plans {
		if s.plans[i].ID.String() == id {
			cp := s.plans[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Seed loads pre-existing plans. Intended for startup fixtures.
func (s *Store) Seed(plans []Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, plans...)
}
