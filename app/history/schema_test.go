package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := Schema()
	require.NotNil(t, s)
	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"title":"iqcmaker history"`)
	assert.Contains(t, out, `"timestamp"`)
	assert.Contains(t, out, `"succeeded"`)
	assert.Contains(t, out, `"required":["id","timestamp","text","status"]`)
}
