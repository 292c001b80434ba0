// Package schema describes the structured data exchanged with the model and
// validates raw model output against it.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type Type string

const (
	TypeObject  Type = "object"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
)

// Schema is a small subset of JSON Schema, enough to describe flat and
// nested objects of scalar fields. It is the one descriptor every backend
// renders from: Gemini gets it as a genai.Schema, text-only models get it as
// a JSON document inside the prompt.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	Required    []string

	once     sync.Once
	compiled *gojsonschema.Schema
	err      error
}

// Document returns the JSON Schema form of s.
func (s *Schema) Document() map[string]any {
	doc := map[string]any{
		"type": string(s.Type),
	}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.Document()
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		doc["required"] = append([]string(nil), s.Required...)
	}
	return doc
}

func (s *Schema) String() string {
	b, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", s.Document())
	}
	return string(b)
}

// ValidationError lists every way a document failed to match a schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema mismatch: " + strings.Join(e.Problems, "; ")
}

// Validate checks raw JSON against s. Malformed JSON is reported as a plain
// error, structural mismatches as a *ValidationError.
func (s *Schema) Validate(raw []byte) error {
	s.once.Do(func() {
		s.compiled, s.err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.Document()))
	})
	if s.err != nil {
		return fmt.Errorf("compile schema: %w", s.err)
	}

	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return &ValidationError{Problems: problems}
}
