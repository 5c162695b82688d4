package openapi

import (
	"maps"
	"net/http"
)

// Components holds reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// errorResponses maps component response names to the status they document.
// Every handler error is written as {"error": "..."}.
var errorResponses = map[string]int{
	"BadRequest":          http.StatusBadRequest,
	"Unauthorized":        http.StatusUnauthorized,
	"NotFound":            http.StatusNotFound,
	"UnprocessableEntity": http.StatusUnprocessableEntity,
	"InternalError":       http.StatusInternalServerError,
	"BadGateway":          http.StatusBadGateway,
}

// NewComponents creates Components with the Error schema and one response per
// error status in errorResponses.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
	}

	for name, status := range errorResponses {
		c.Responses[name] = ResponseJSON(http.StatusText(status), "Error")
	}
	return c
}

// ErrorResponseName returns the component response name for status, or
// "InternalError" when status has no dedicated component.
func ErrorResponseName(status int) string {
	for name, s := range errorResponses {
		if s == status {
			return name
		}
	}
	return "InternalError"
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
