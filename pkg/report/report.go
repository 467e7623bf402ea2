// Package report summarizes a yard after simulation and writes the summary
// as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cratetower/pkg/crane"
	"github.com/matzehuels/cratetower/pkg/diagram"
	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/yard"
)

// EmptyTop stands in for the top of an empty stack.
const EmptyTop = "none"

// Format selects the output encoding of Write.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a format name. Empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown format %q (want text, json or yaml)", s)
}

// Stack is one stack as it appears in a report. Items run bottom to top.
type Stack struct {
	ID    yard.StackID `json:"id" yaml:"id"`
	Items []yard.Item  `json:"items" yaml:"items"`
	Top   string       `json:"top" yaml:"top"`
}

// Report is the final state of a yard.
type Report struct {
	Mode   crane.Mode `json:"mode" yaml:"mode"`
	Tops   string     `json:"tops" yaml:"tops"`
	Stacks []Stack    `json:"stacks" yaml:"stacks"`

	// Diagram is the yard rendered in input format. It is only filled in
	// for text output and is not serialized.
	Diagram string `json:"-" yaml:"-"`
}

// FromYard builds a report for y. Tops concatenates the top item of every
// stack in declaration order, with EmptyTop for empty stacks.
func FromYard(y *yard.Yard, mode crane.Mode) *Report {
	rep := &Report{Mode: mode, Stacks: make([]Stack, 0, y.Size())}

	var tops strings.Builder
	for _, s := range y.Stacks() {
		st := Stack{ID: s.ID, Items: s.Items, Top: EmptyTop}
		if st.Items == nil {
			st.Items = []yard.Item{}
		}
		if top, ok := s.Top(); ok {
			st.Top = string(top)
		}
		tops.WriteString(st.Top)
		rep.Stacks = append(rep.Stacks, st)
	}
	rep.Tops = tops.String()
	rep.Diagram = diagram.Render(y)
	return rep
}

// Write encodes rep to w in the given format.
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return errs.New(errs.ErrCodeInvalidInput, "unknown format %q", format)
}

func writeText(w io.Writer, rep *Report) error {
	if _, err := fmt.Fprintf(w, "%s\n", rep.Tops); err != nil {
		return err
	}
	if rep.Diagram == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s", rep.Diagram)
	return err
}
