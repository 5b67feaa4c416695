package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// decodePartial decodes a partial-update body into dst and returns the
// raw field map, so callers can tell an absent field from one that was
// explicitly set to null. Fields named in nonNullable are rejected when
// present with a null value.
func decodePartial(c *gin.Context, dst interface{}, nonNullable ...string) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}

	for _, name := range nonNullable {
		if raw, ok := fields[name]; ok && isJSONNull(raw) {
			return nil, fmt.Errorf("%s cannot be null", name)
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}

	return fields, nil
}

// fieldIsNull reports whether a field was present and explicitly null.
func fieldIsNull(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	return ok && isJSONNull(raw)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
