package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Operation joins the values of a clause (and, or, not) or prefixes a single
// value with a comparison (>, <, >=, <=, =). The zero value means no operation.
type Operation string

const (
	And          Operation = "and"
	Or           Operation = "or"
	Not          Operation = "not"
	Greater      Operation = ">"
	Less         Operation = "<"
	GreaterEqual Operation = ">="
	LessEqual    Operation = "<="
	Equal        Operation = "="
)

var supportedOperations = map[Operation]bool{
	And:          true,
	Or:           true,
	Not:          true,
	Greater:      true,
	Less:         true,
	GreaterEqual: true,
	LessEqual:    true,
	Equal:        true,
}

// ParseOperation normalizes keyword case. Empty input is the zero Operation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if op == "" {
		return "", nil
	}
	if err := op.Validate(); err != nil {
		return "", err
	}
	return op, nil
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("operation must be a string: %w", err)
	}
	op, err := ParseOperation(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

func (o *Operation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: operation must be a string", node.Line)
	}
	op, err := ParseOperation(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*o = op
	return nil
}

func (o Operation) String() string {
	return string(o)
}

func (o Operation) IsZero() bool {
	return o == ""
}

// Keyword is the infix form used between grouped values, e.g. OR.
func (o Operation) Keyword() string {
	return strings.ToUpper(string(o))
}

// Validate accepts the zero value and the supported operations.
func (o Operation) Validate() error {
	if o.IsZero() || supportedOperations[o] {
		return nil
	}
	return fmt.Errorf("invalid operation: %q (must be one of and, or, not, >, <, >=, <=, =)", string(o))
}
