package binding

import "testing"

func TestInterpolateResolvesNestedPaths(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{"name": "Ada"},
		"quiz": map[string]any{
			"items": []any{
				map[string]any{"question": "What is 2+2?", "points": float64(5)},
			},
		},
	}
	got := Interpolate("Hi ${user.name}: ${ quiz.items[0].question } (${quiz.items[0].points} pts)", data)
	want := "Hi Ada: What is 2+2? (5 pts)"
	if got != want {
		t.Fatalf("Interpolate() = %q, want %q", got, want)
	}
}

func TestInterpolateKeepsUnknownPlaceholders(t *testing.T) {
	data := map[string]any{"items": []any{"a"}}
	for _, in := range []string{"${missing}", "${items[3]}", "${items[x]}", "${}"} {
		if got := Interpolate(in, data); got != in {
			t.Fatalf("Interpolate(%q) = %q, want placeholder kept", in, got)
		}
	}
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("nil data should leave text untouched, got %q", got)
	}
}
