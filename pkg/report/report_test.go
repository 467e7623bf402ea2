package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cratetower/pkg/crane"
	"github.com/matzehuels/cratetower/pkg/yard"
)

func buildYard(t *testing.T) *yard.Yard {
	t.Helper()
	y, err := yard.New(1, 2, 3)
	if err != nil {
		t.Fatalf("yard.New: %v", err)
	}
	if err := y.PushAll(1, []yard.Item{"Z", "N"}); err != nil {
		t.Fatal(err)
	}
	if err := y.PushAll(3, []yard.Item{"P"}); err != nil {
		t.Fatal(err)
	}
	return y
}

func TestFromYard(t *testing.T) {
	rep := FromYard(buildYard(t), crane.Block)

	if rep.Tops != "NnoneP" {
		t.Errorf("Tops = %q, want %q", rep.Tops, "NnoneP")
	}
	if len(rep.Stacks) != 3 {
		t.Fatalf("got %d stacks, want 3", len(rep.Stacks))
	}
	if rep.Stacks[1].Top != EmptyTop || len(rep.Stacks[1].Items) != 0 {
		t.Errorf("empty stack = %+v", rep.Stacks[1])
	}
	if rep.Stacks[0].Items[0] != "Z" {
		t.Errorf("stack 1 bottom = %q, want Z", rep.Stacks[0].Items[0])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FromYard(buildYard(t), crane.SingleItem), FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "NnoneP\n\n[N]\n[Z]     [P]\n 1   2   3\n"
	if buf.String() != want {
		t.Errorf("text output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FromYard(buildYard(t), crane.Block), FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["mode"] != "block" || got["tops"] != "NnoneP" {
		t.Errorf("json = %v", got)
	}
	if _, ok := got["Diagram"]; ok {
		t.Error("diagram should not be serialized")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FromYard(buildYard(t), crane.Block), FormatYAML); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "tops: NnoneP") {
		t.Errorf("yaml output missing tops:\n%s", buf.String())
	}

	var got struct {
		Mode   string `yaml:"mode"`
		Stacks []struct {
			ID  int    `yaml:"id"`
			Top string `yaml:"top"`
		} `yaml:"stacks"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got.Mode != "block" || len(got.Stacks) != 3 || got.Stacks[2].Top != "P" {
		t.Errorf("yaml = %+v", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, FromYard(buildYard(t), crane.Block), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
