package query

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a saved query.
type Document struct {
	Name  string   `yaml:"name" description:"Free-form label used in logs"`
	Query []Clause `yaml:"query" description:"Clauses joined with AND" schema:"required,minItems=1"`
}

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(reader io.Reader) *YAMLLoader {
	return &YAMLLoader{
		reader: reader,
	}
}

func (l *YAMLLoader) Load(validate bool) (*Document, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("query document is empty")
		}
		return nil, fmt.Errorf("failed to decode query document: %w", err)
	}

	if validate {
		if err := ValidateAll(doc.Query); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}
