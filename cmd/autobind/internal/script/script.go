// Package script parses scenario files replayed by "autobind run".
//
// A scenario is a YAML document with a list of steps. Each step has exactly
// one key:
//
//	name: happy path
//	steps:
//	  - type: {email: a@b.com}   # user input into a field
//	  - set: {password: x}       # direct model write
//	  - frame: 1                 # run N frames
//	  - tap: login               # tap a button
//	  - advance: 2s              # move the clock, then run one frame
//
// type and set accept several fields; they are applied in document order.
package script

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/autobind/pkg/errors"
)

// Kind identifies a step.
type Kind string

const (
	KindType    Kind = "type"
	KindSet     Kind = "set"
	KindTap     Kind = "tap"
	KindFrame   Kind = "frame"
	KindAdvance Kind = "advance"
)

// Step is one action of a scenario.
type Step struct {
	Kind Kind
	// Target is the field for type and set, the button for tap.
	Target string
	// Value is the text for type and set.
	Value string
	// Frames is the frame count for frame.
	Frames int
	// Duration is the clock advance for advance.
	Duration time.Duration
	// Line is the source line of the step.
	Line int
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name  string
	Steps []Step
}

type document struct {
	Name  string      `yaml:"name"`
	Steps []yaml.Node `yaml:"steps"`
}

// Parse decodes a scenario. source names the input in error messages.
func Parse(source string, data []byte) (*Scenario, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.BindError{Op: "script.Parse", Kind: errors.KindParsing, Err: err}
	}

	sc := &Scenario{Name: doc.Name}
	for i := range doc.Steps {
		steps, err := parseStep(source, &doc.Steps[i])
		if err != nil {
			return nil, &errors.BindError{Op: "script.Parse", Kind: errors.KindParsing, Err: err}
		}
		sc.Steps = append(sc.Steps, steps...)
	}
	return sc, nil
}

func parseStep(source string, node *yaml.Node) ([]Step, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, fmt.Errorf("line %d: %w", node.Line,
			&errors.ParseError{Source: source, Field: "step", Got: node.Value})
	}
	key, value := node.Content[0], node.Content[1]
	line := key.Line

	switch Kind(key.Value) {
	case KindType, KindSet:
		return parseAssignments(source, Kind(key.Value), value)
	case KindTap:
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, lineError(line, source, "tap", value.Value)
		}
		return []Step{{Kind: KindTap, Target: value.Value, Line: line}}, nil
	case KindFrame:
		var n int
		if err := value.Decode(&n); err != nil || n < 1 {
			return nil, lineError(line, source, "frame", value.Value)
		}
		return []Step{{Kind: KindFrame, Frames: n, Line: line}}, nil
	case KindAdvance:
		d, err := time.ParseDuration(value.Value)
		if err != nil || d < 0 {
			return nil, lineError(line, source, "advance", value.Value)
		}
		return []Step{{Kind: KindAdvance, Duration: d, Line: line}}, nil
	default:
		return nil, lineError(line, source, "step kind", key.Value)
	}
}

// parseAssignments keeps the document order of a {field: value} mapping.
func parseAssignments(source string, kind Kind, node *yaml.Node) ([]Step, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) == 0 {
		return nil, lineError(node.Line, source, string(kind), node.Value)
	}
	var steps []Step
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, lineError(v.Line, source, string(kind)+"."+k.Value, v.Value)
		}
		steps = append(steps, Step{Kind: kind, Target: k.Value, Value: v.Value, Line: k.Line})
	}
	return steps, nil
}

func lineError(line int, source, field string, got any) error {
	return fmt.Errorf("line %d: %w", line, &errors.ParseError{Source: source, Field: field, Got: got})
}
