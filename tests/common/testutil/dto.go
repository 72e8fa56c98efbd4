//go:build unit || e2e

package testutil

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

// Mutation edits a request payload in its JSON object form.
type Mutation func(map[string]any)

// DtoMap renders v as a JSON object and applies muts. Tests use it to send
// payloads the typed request DTOs cannot express, such as wrong field types.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := jsoniter.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, jsoniter.Unmarshal(raw, &m))

	for _, mut := range muts {
		mut(m)
	}
	return m
}

// Field sets key to value. A nil value removes the key.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
