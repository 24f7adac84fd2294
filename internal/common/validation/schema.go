// Package validation checks generated records against embedded JSON schemas.
package validation

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"marketplace-datagen/internal/models"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RecordValidator holds the compiled RFQ and supplier schemas. It is safe
// for concurrent use.
type RecordValidator struct {
	rfq      *gojsonschema.Schema
	supplier *gojsonschema.Schema
}

func NewRecordValidator() (*RecordValidator, error) {
	rfq, err := loadSchema("schemas/rfq.json")
	if err != nil {
		return nil, err
	}
	supplier, err := loadSchema("schemas/supplier.json")
	if err != nil {
		return nil, err
	}
	return &RecordValidator{rfq: rfq, supplier: supplier}, nil
}

func loadSchema(path string) (*gojsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return CompileSchema(string(data))
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(schemaJSON string) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func (v *RecordValidator) ValidateRFQ(r models.RFQ) *ValidationResult {
	return ValidateDocument(v.rfq, r)
}

func (v *RecordValidator) ValidateSupplier(s models.SupplierProfile) *ValidationResult {
	return ValidateDocument(v.supplier, s)
}

// ValidateDocument validates any JSON-marshalable value. A document that
// cannot be loaded is reported as a single error on the root field.
func ValidateDocument(schema *gojsonschema.Schema, doc interface{}) *ValidationResult {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT"}},
		}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out
}

// GetErrorMessages returns "field: message" for every error.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for field and anything nested under it.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}
