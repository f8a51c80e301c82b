package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/GregMSThompson/utools/internal/errs"
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return s
}

// decodeBody checks the request body against schema before decoding it into
// v. Schemas only enforce shape; range rules belong to the services so they
// can return their own codes.
func decodeBody(r *http.Request, schema *gojsonschema.Schema, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errs.NewInvalidRequestError("could not read request body")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errs.NewInvalidRequestError("request body must be a JSON object")
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return errs.NewInvalidRequestError(strings.Join(problems, "; "))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errs.NewInvalidRequestError("request body could not be decoded")
	}
	return nil
}
