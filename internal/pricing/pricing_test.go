package pricing

import (
	"errors"
	"testing"
)

func TestCreateAndUpdate(t *testing.T) {
	store := NewStore()

	plan, err := store.Create(Input{Name: "Pro", PriceMonthlyCents: 2900, PriceYearlyCents: 29900})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Create(Input{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("blank name = %v, want ErrNameRequired", err)
	}
	if _, err := store.Create(Input{Name: "x", PriceMonthlyCents: -1}); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("negative price = %v, want ErrNegativePrice", err)
	}

	updated, err := store.Update(plan.ID.String(), Input{Name: "Pro Plus", PriceMonthlyCents: 3900, PriceYearlyCents: 39900, Popular: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Pro Plus" || !updated.Popular {
		t.Errorf("update not applied: %+v", updated)
	}

	if _, err := store.Update("missing", Input{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestYearlyEffectiveMonthly(t *testing.T) {
	tests := []struct {
		yearly int
		want   int
	}{
		{29900, 2491}, // 29900/12 = 2491.66 → floored
		{12000, 1000},
		{0, 0},
		{11, 0},
	}
	for _, tt := range tests {
		p := Plan{PriceYearlyCents: tt.yearly}
		if got := p.YearlyEffectiveMonthlyCents(); got != tt.want {
			t.Errorf("yearly %d → %d/mo, want %d", tt.yearly, got, tt.want)
		}
	}
}

func TestListOrder(t *testing.T) {
	store := NewStore()
	store.Create(Input{Name: "Free"})
	store.Create(Input{Name: "Pro"})
	store.Create(Input{Name: "Enterprise"})

	plans := store.List()
	if len(plans) != 3 || plans[0].Name != "Free" || plans[2].Name != "Enterprise" {
		t.Errorf("catalogue order wrong: %+v", plans)
	}
}
