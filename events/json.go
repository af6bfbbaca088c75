package events

import (
	json "github.com/goccy/go-json"
	"github.com/tidwall/sjson"
)

// marshalWithError renders v and splices the error's message into the
// "error" field. Error values don't marshal on their own, so failure
// contexts exclude them from the struct tags and route through here.
func marshalWithError(v any, err error) ([]byte, error) {
	b, merr := json.Marshal(v)
	if merr != nil {
		return nil, merr
	}
	if err == nil {
		return b, nil
	}
	return sjson.SetBytes(b, "error", err.Error())
}
