package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is one clause value. Strings and numbers are both accepted and kept
// as their literal text so that 10 renders as 10 and not 10.000000.
type Value string

func Text(s string) Value {
	return Value(s)
}

func Int(n int64) Value {
	return Value(strconv.FormatInt(n, 10))
}

func Float(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

func (v Value) String() string {
	return string(v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("value must be a string or a number, got %s", string(data))
	}
	*v = Value(n.String())
	return nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a string or a number", node.Line)
	}
	switch node.ShortTag() {
	case "!!str", "!!int", "!!float":
		*v = Value(node.Value)
		return nil
	default:
		return fmt.Errorf("line %d: value must be a string or a number, got %s", node.Line, node.ShortTag())
	}
}

// Clause is one filter term of a provider query.
type Clause struct {
	Field     string    `json:"field" yaml:"field" example:"title" schema:"required,minLength=1"`
	Operation Operation `json:"operation,omitempty" yaml:"operation,omitempty" example:"or" enums:"and,or,not,>,<,>=,<=,="`
	Values    []Value   `json:"values" yaml:"values" swaggertype:"array,string" example:"Android,iPhone" schema:"required,minItems=1,items=scalar"`
}

// Validate checks the clause invariants. Build never calls it.
func (c Clause) Validate() error {
	if strings.TrimSpace(c.Field) == "" {
		return fmt.Errorf("field is required")
	}
	if len(c.Values) == 0 {
		return fmt.Errorf("field %q: values must not be empty", c.Field)
	}
	if err := c.Operation.Validate(); err != nil {
		return fmt.Errorf("field %q: %w", c.Field, err)
	}
	return nil
}

// ValidateAll validates a non-empty clause list.
func ValidateAll(clauses []Clause) error {
	if len(clauses) == 0 {
		return fmt.Errorf("query must contain at least one clause")
	}
	for i, c := range clauses {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("query[%d]: %w", i, err)
		}
	}
	return nil
}
