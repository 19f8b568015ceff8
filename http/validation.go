package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

// ErrInvalidBody is returned for bodies that are not a single JSON document.
var ErrInvalidBody = errors.New("invalid request body")

// ValidationError carries every schema violation found in a request body.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %v", e.Details)
}

// Numeric fields accept null (normalized to 0 on decode) but must be present.
const propertySchemaJSON = `{
	"type": "object",
	"additionalProperties": false,
	"required": [
		"purchasePrice", "downPayment", "interestRate", "loanTerm", "propertyTaxes",
		"homeInsurance", "hoa", "grossMonthlyRent", "vacancyRate", "repairs",
		"capex", "management", "closingCosts"
	],
	"properties": {
		"purchasePrice":    {"type": ["number", "null"], "minimum": 0},
		"downPayment":      {"type": ["number", "null"], "minimum": 0, "maximum": 100},
		"interestRate":     {"type": ["number", "null"], "minimum": 0},
		"loanTerm":         {"type": ["number", "null"], "minimum": 0},
		"propertyTaxes":    {"type": ["number", "null"], "minimum": 0},
		"homeInsurance":    {"type": ["number", "null"], "minimum": 0},
		"hoa":              {"type": ["number", "null"], "minimum": 0},
		"grossMonthlyRent": {"type": ["number", "null"], "minimum": 0},
		"vacancyRate":      {"type": ["number", "null"], "minimum": 0, "maximum": 100},
		"repairs":          {"type": ["number", "null"], "minimum": 0, "maximum": 100},
		"capex":            {"type": ["number", "null"], "minimum": 0, "maximum": 100},
		"management":       {"type": ["number", "null"], "minimum": 0, "maximum": 100},
		"closingCosts":     {"type": ["number", "null"], "minimum": 0, "maximum": 100}
	}
}`

var (
	propertySchema  = mustSchema(propertySchemaJSON)
	financingSchema = mustSchema(fmt.Sprintf(`{
	"type": "object",
	"additionalProperties": false,
	"required": ["property", "minTermYears", "maxTermYears", "preference"],
	"properties": {
		"property":           %s,
		"minTermYears":       {"type": "integer"},
		"maxTermYears":       {"type": "integer"},
		"minMonthlyCashFlow": {"type": ["number", "null"]},
		"preference":         {"type": "string", "enum": ["maximize_cash_flow", "minimize_interest", "balanced"]}
	}
}`, propertySchemaJSON))
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile request schema: %v", err))
	}
	return schema
}

// decodeValidated reads the body, checks it against schema and decodes it
// into dst. Range checks run before the engine ever sees the values.
func decodeValidated(r *http.Request, schema *gojsonschema.Schema, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if !json.Valid(body) {
		return ErrInvalidBody
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return &ValidationError{Details: details}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
