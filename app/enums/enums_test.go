package enums

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_Parse(t *testing.T) {
	for i, name := range JobStatusNames {
		st, err := ParseJobStatus(name)
		require.NoError(t, err)
		assert.Equal(t, JobStatusValues[i], st)
		assert.Equal(t, name, st.String())
		assert.Equal(t, i, st.Index())
	}

	st, err := ParseJobStatus("SUCCEEDED")
	require.NoError(t, err)
	assert.Equal(t, JobStatusSucceeded, st)

	_, err = ParseJobStatus("BERHASIL")
	assert.Error(t, err)
	assert.Panics(t, func() { MustJobStatus("bad") })
}

func TestJobStatus_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		S JobStatus `json:"s"`
	}{S: JobStatusFailed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"failed"}`, string(data))

	var v struct {
		S JobStatus `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"pending"}`), &v))
	assert.Equal(t, JobStatusPending, v.S)
	assert.Error(t, json.Unmarshal([]byte(`{"s":"done"}`), &v))
}

func TestJobStatus_Scan(t *testing.T) {
	var st JobStatus
	require.NoError(t, st.Scan([]byte("succeeded")))
	assert.Equal(t, JobStatusSucceeded, st)
	require.NoError(t, st.Scan(nil))
	assert.Equal(t, JobStatusPending, st)
	assert.Error(t, st.Scan(42))

	v, err := JobStatusFailed.Value()
	require.NoError(t, err)
	assert.Equal(t, "failed", v)
}

func TestOtherEnums(t *testing.T) {
	assert.Equal(t, StoreTypeRedis, MustStoreType("redis"))
	assert.Equal(t, OutputFormatYaml, MustOutputFormat("YAML"))
	assert.Equal(t, EventTypeCleared, MustEventType("cleared"))
	assert.Len(t, StoreTypeValues, 4)
	assert.Len(t, EventTypeNames, 4)
	_, err := ParseOutputFormat("xml")
	assert.Error(t, err)
}
