package test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DecodeError decodes an error response body and returns the error message.
func DecodeError(t *testing.T, body []byte) string {
	var response struct {
		Error string `json:"error"`
	}

	err := json.Unmarshal(body, &response)
	require.NoError(t, err, "body could not be decoded: %s", string(body))

	return response.Error
}
