package theme

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("default tokens invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tokens)
		want   error
	}{
		{"bad primary HSL", func(tk *Tokens) { tk.PrimaryHSL = "purple" }, ErrInvalidHSL},
		{"bad accent HSL", func(tk *Tokens) { tk.AccentHSL = "240,5%,96%" }, ErrInvalidHSL},
		{"radius too large", func(tk *Tokens) { tk.RadiusPx = 64 }, ErrInvalidRadius},
		{"negative radius", func(tk *Tokens) { tk.RadiusPx = -1 }, ErrInvalidRadius},
		{"bad success color", func(tk *Tokens) { tk.SuccessColor = "green" }, ErrInvalidHex},
		{"short hex", func(tk *Tokens) { tk.ErrorColor = "#F00" }, ErrInvalidHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Defaults()
			tt.mutate(&tokens)
			if err := tokens.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStoreUpdateAndReset(t *testing.T) {
	store := NewStore()

	custom := Defaults()
	custom.RadiusPx = 12
	if err := store.Update(custom); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.Get().RadiusPx != 12 {
		t.Errorf("update not applied")
	}

	bad := Defaults()
	bad.PrimaryHSL = "nope"
	if err := store.Update(bad); err == nil {
		t.Error("invalid tokens accepted")
	}
	if store.Get().RadiusPx != 12 {
		t.Error("rejected update mutated the store")
	}

	if got := store.Reset(); got != Defaults() {
		t.Errorf("Reset = %+v", got)
	}
}

func TestCSSVariables(t *testing.T) {
	css := Defaults().CSSVariables()
	for _, want := range []string{"--primary: 262 83% 58%", "--radius: 8px", "--error: #EF4444"} {
		if !strings.Contains(css, want) {
			t.Errorf("CSSVariables missing %q:\n%s", want, css)
		}
	}
}
