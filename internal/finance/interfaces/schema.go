package interfaces

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var (
	paymentSchema  = mustLoadSchema("payment")
	transferSchema = mustLoadSchema("transfer")
)

var errInvalidBody = errors.New("invalid request body")

func mustLoadSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFiles.ReadFile(fmt.Sprintf("schemas/%s.schema.json", name))
	if err != nil {
		panic(err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return schema
}

// decodeValidated checks the request body against schema before decoding it
// into v. Schema violations come back as messages; a body that is not JSON at
// all gives errInvalidBody.
func decodeValidated(r *http.Request, schema *gojsonschema.Schema, v interface{}) ([]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errInvalidBody
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, errInvalidBody
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return violations, nil
	}

	if err := json.Unmarshal(body, v); err != nil {
		return nil, errInvalidBody
	}
	return nil, nil
}

// decodeBody is the schema-less variant used by the account and planner
// endpoints.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// validatedBody writes the 400 response itself and reports whether decoding
// succeeded.
func (h responder) validatedBody(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, v interface{}) bool {
	violations, err := decodeValidated(r, schema, v)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if len(violations) > 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", violations)
		return false
	}
	return true
}
