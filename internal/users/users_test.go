package users

import (
	"errors"
	"testing"
)

func TestCreateAndValidation(t *testing.T) {
	store := NewStore()

	user, err := store.Create(Input{Name: "Ada Lovelace", Email: "Ada@Example.com", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Status != StatusActive {
		t.Errorf("status = %q", user.Status)
	}

	tests := []struct {
		name  string
		input Input
		want  error
	}{
		{"missing name", Input{Email: "x@y.co", Role: RoleViewer}, ErrNameRequired},
		{"missing email", Input{Name: "X", Role: RoleViewer}, ErrEmailRequired},
		{"bad role", Input{Name: "X", Email: "x@y.co", Role: "owner"}, ErrInvalidRole},
		{"duplicate email", Input{Name: "X", Email: "ADA@example.com", Role: RoleViewer}, ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Create = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateAndStatus(t *testing.T) {
	store := NewStore()
	user, _ := store.Create(Input{Name: "Grace", Email: "grace@example.com", Role: RoleEditor})

	updated, err := store.Update(user.ID.String(), Input{Name: "Grace Hopper", Email: "grace@example.com", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Grace Hopper" || updated.Role != RoleAdmin {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := store.SetStatus(user.ID.String(), StatusInactive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, _ := store.Get(user.ID.String())
	if got.Status != StatusInactive {
		t.Errorf("status = %q", got.Status)
	}

	if err := store.SetStatus(user.ID.String(), "frozen"); err == nil {
		t.Error("invalid status accepted")
	}
	if _, err := store.Update("missing", Input{Name: "X", Email: "x@y.co", Role: RoleViewer}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestSearchAndTouch(t *testing.T) {
	store := NewStore()
	a, _ := store.Create(Input{Name: "Alan Turing", Email: "alan@bletchley.org", Role: RoleViewer})
	store.Create(Input{Name: "Ada", Email: "ada@example.com", Role: RoleAdmin})

	if got := store.Search("bletchley"); len(got) != 1 {
		t.Errorf("Search(bletchley) = %d results, want 1", len(got))
	}
	if got := store.Search("A"); len(got) != 2 {
		t.Errorf("Search(A) = %d results, want 2", len(got))
	}

	before, _ := store.Get(a.ID.String())
	store.Touch(a.ID.String())
	after, _ := store.Get(a.ID.String())
	if after.LastActiveAt.Before(before.LastActiveAt) {
		t.Error("Touch moved LastActiveAt backwards")
	}
}

func TestDelete(t *testing.T) {
	store := NewStore()
	user, _ := store.Create(Input{Name: "X", Email: "x@y.co", Role: RoleViewer})

	store.Delete(user.ID.String())
	if len(store.List()) != 0 {
		t.Error("user not deleted")
	}
	store.Delete("missing") // no-op
}
