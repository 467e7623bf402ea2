package diagram

import (
	"strings"
	"testing"

	"github.com/matzehuels/cratetower/pkg/yard"
)

func TestRenderSample(t *testing.T) {
	y, err := Parse(lines(sample), 1)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := "    [D]\n[N] [C]\n[Z] [M] [P]\n 1   2   3\n"
	if got := Render(y); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	y, _ := yard.New(3, 1, 7, 2)
	_ = y.PushAll(3, []yard.Item{"A", "B", "C"})
	_ = y.PushAll(7, []yard.Item{"D"})
	_ = y.PushAll(2, []yard.Item{"E", "F"})

	out := Render(y)
	back, err := Parse(strings.Split(strings.TrimRight(out, "\n"), "\n"), 1)
	if err != nil {
		t.Fatalf("Parse(Render()) error: %v\n%s", err, out)
	}
	if !back.Equal(y) {
		t.Errorf("round trip mismatch:\n%s", out)
	}
}

func TestRenderWideSlots(t *testing.T) {
	y, _ := yard.New(10, 200)
	_ = y.PushAll(10, []yard.Item{"LONG"})
	_ = y.PushAll(200, []yard.Item{"X"})

	out := Render(y)
	back, err := Parse(strings.Split(strings.TrimRight(out, "\n"), "\n"), 1)
	if err != nil {
		t.Fatalf("Parse(Render()) error: %v\n%s", err, out)
	}
	if !back.Equal(y) {
		t.Errorf("round trip mismatch:\n%s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(&yard.Yard{}); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}

	y, _ := yard.New(1, 2)
	if got := Render(y); got != " 1   2\n" {
		t.Errorf("Render(no crates) = %q", got)
	}
}
