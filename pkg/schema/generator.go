package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// JSONSchema represents a JSON Schema document
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	AnyOf                []*JSONSchema          `json:"anyOf,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
	Examples             []any                  `json:"examples,omitempty"`
}

const schemaRef = "https://json-schema.org/draft/2020-12/schema"

// Generator derives JSON schemas for YAML documents from Go structs. Field
// names come from yaml tags, then json tags. Structs reject unknown keys.
type Generator struct {
	idBase string
}

func NewGenerator(idBase string) *Generator {
	return &Generator{
		idBase: strings.TrimRight(idBase, "/"),
	}
}

// GenerateSchema generates a root schema for the type of v.
func (g *Generator) GenerateSchema(v any) (*JSONSchema, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("cannot generate schema for nil")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema, err := g.generateSchemaForType(t)
	if err != nil {
		return nil, err
	}

	schema.Schema = schemaRef
	schema.Title = t.Name()
	if g.idBase != "" && t.Name() != "" {
		schema.ID = fmt.Sprintf("%s/%s", g.idBase, strings.ToLower(t.Name()))
	}
	return schema, nil
}

func (g *Generator) generateSchemaForType(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.generateStructSchema(t)
	case reflect.Slice, reflect.Array:
		return g.generateSliceSchema(t)
	case reflect.String:
		return &JSONSchema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &JSONSchema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}, nil
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *Generator) generateStructSchema(t reflect.Type) (*JSONSchema, error) {
	closed := false
	schema := &JSONSchema{
		Type:                 "object",
		Properties:           make(map[string]*JSONSchema),
		AdditionalProperties: &closed,
	}

	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName := fieldName(field)
		if fieldName == "" {
			continue
		}

		fieldSchema, err := g.generateFieldSchema(field)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for field %s: %w", field.Name, err)
		}

		schema.Properties[fieldName] = fieldSchema
		if isFieldRequired(field) {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema, nil
}

func (g *Generator) generateSliceSchema(t reflect.Type) (*JSONSchema, error) {
	itemSchema, err := g.generateSchemaForType(t.Elem())
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for array items: %w", err)
	}

	return &JSONSchema{
		Type:  "array",
		Items: itemSchema,
	}, nil
}

func (g *Generator) generateFieldSchema(field reflect.StructField) (*JSONSchema, error) {
	fieldSchema, err := g.generateSchemaForType(field.Type)
	if err != nil {
		return nil, err
	}

	if desc := field.Tag.Get("description"); desc != "" {
		fieldSchema.Description = desc
	}

	// enums is shared with the swagger annotations
	if enums := field.Tag.Get("enums"); enums != "" {
		for _, e := range strings.Split(enums, ",") {
			fieldSchema.Enum = append(fieldSchema.Enum, e)
		}
	}

	if schemaTag := field.Tag.Get("schema"); schemaTag != "" {
		parseSchemaTag(schemaTag, fieldSchema)
	}

	return fieldSchema, nil
}

// parseSchemaTag applies options such as
// `schema:"required,minItems=1,items=scalar,pattern=^a"`.
// items=scalar lets array items be strings or numbers.
func parseSchemaTag(tag string, schema *JSONSchema) {
	for _, part := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")

		switch key {
		case "default":
			schema.Default = value
		case "pattern":
			schema.Pattern = value
		case "minLength":
			if n, err := strconv.Atoi(value); err == nil {
				schema.MinLength = &n
			}
		case "minItems":
			if n, err := strconv.Atoi(value); err == nil {
				schema.MinItems = &n
			}
		case "items":
			if value == "scalar" && schema.Items != nil {
				schema.Items = scalar()
			}
		}
	}
}

func scalar() *JSONSchema {
	return &JSONSchema{
		AnyOf: []*JSONSchema{
			{Type: "string"},
			{Type: "number"},
		},
	}
}

func fieldName(field reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}

func isFieldRequired(field reflect.StructField) bool {
	for _, part := range strings.Split(field.Tag.Get("schema"), ",") {
		if strings.TrimSpace(part) == "required" {
			return true
		}
	}
	return false
}

// GenerateJSONSchema generates a JSON schema as an indented JSON string
func (g *Generator) GenerateJSONSchema(v any) (string, error) {
	schema, err := g.GenerateSchema(v)
	if err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	return string(jsonBytes), nil
}
