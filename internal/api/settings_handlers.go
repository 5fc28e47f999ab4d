package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portaldev/portal-admin/internal/pricing"
	"github.com/portaldev/portal-admin/internal/theme"
)

// Pricing

type planRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	PriceMonthlyCents int      `json:"price_monthly_cents"`
	PriceYearlyCents  int      `json:"price_yearly_cents"`
	Features          []string `json:"features"`
	Popular           bool     `json:"popular"`
	CTA               string   `json:"cta"`
}

func (req planRequest) toInput() pricing.Input {
	return pricing.Input{
		Name:              req.Name,
		Description:       req.Description,
		PriceMonthlyCents: req.PriceMonthlyCents,
		PriceYearlyCents:  req.PriceYearlyCents,
		Features:          req.Features,
		Popular:           req.Popular,
		CTA:               req.CTA,
	}
}

// planDTO adds the derived yearly-effective monthly price to the wire shape.
type planDTO struct {
	pricing.Plan
	YearlyEffectiveMonthlyCents int `json:"yearly_effective_monthly_cents"`
}

func toPlanDTO(p pricing.Plan) planDTO {
	return planDTO{Plan: p, YearlyEffectiveMonthlyCents: p.YearlyEffectiveMonthlyCents()}
}

func pricingErrorStatus(err error) int {
	switch {
	case errors.Is(err, pricing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrNameRequired), errors.Is(err, pricing.ErrNegativePrice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListPlans returns the plan catalogue.
func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans := h.plans.List()
	out := make([]planDTO, len(plans))
	for i, p := range plans {
		out[i] = toPlanDTO(p)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"plans": out})
}

// UpdatePlan replaces a plan's editable fields.
func (h *Handlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	plan, err := h.plans.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		respondError(w, pricingErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toPlanDTO(*plan))
}

// Theme

// GetTheme returns the active design tokens.
func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	tokens := h.theme.Get()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"css":    tokens.CSSVariables(),
	})
}

// UpdateTheme validates and replaces the design tokens.
func (h *Handlers) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var tokens theme.Tokens
	if err := decodeJSON(r, &tokens); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.theme.Update(tokens); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tokens": tokens})
}

// ResetTheme restores the default tokens.
func (h *Handlers) ResetTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"tokens": h.theme.Reset()})
}
