package prediction

import (
	"reflect"
	"testing"
	"time"
)

func TestSanitizeKeys_Recursive(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"a.b": map[string]any{"c.d": 1},
		"x.s": []any{
			map[string]any{"x.y.z": "v"},
			"plain.value",
		},
	}
	want := map[string]any{
		"a_b": map[string]any{"c_d": 1},
		"x_s": []any{
			map[string]any{"x_y_z": "v"},
			"plain.value",
		},
	}

	got := SanitizeKeys(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sanitized value:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestSanitizeKeys_Idempotent(t *testing.T) {
	t.Parallel()

	in := map[string]any{"predictions.winner": map[string]any{"id.home": 1, "comment": "Double chance"}}
	once := SanitizeKeys(in)
	twice := SanitizeKeys(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sanitize is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestSanitizeKeys_CollisionIsDeterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		got := SanitizeMap(map[string]any{"a.b": "dotted", "a_b": "clean", "x.y.z": 1, "x_y.z": 2})
		if got["a_b"] != "clean" {
			t.Fatalf("expected the clean key to win, got %v", got["a_b"])
		}
		if got["x_y_z"] != 1 {
			t.Fatalf("expected the first dotted key in order to win, got %v", got["x_y_z"])
		}
		if len(got) != 2 {
			t.Fatalf("unexpected keys: %+v", got)
		}
	}
}

func TestSanitizeKeys_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := map[string]any{"a.b": 1}
	_ = SanitizeKeys(in)
	if _, ok := in["a.b"]; !ok {
		t.Fatalf("input map was mutated")
	}
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	rec := NewRecord("42", map[string]any{"under.over": "-3.5"}, now)
	if rec.MatchID != "42" || !rec.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if _, ok := rec.Data["under_over"]; !ok {
		t.Fatalf("expected sanitized key, got %+v", rec.Data)
	}
}
