package dto

import "github.com/invopop/jsonschema"

// SolveRequestSchema describes the solve endpoints' request body.
func SolveRequestSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	s := r.Reflect(&SolveRequest{})
	s.Title = "Transfer task problem"
	return s
}
