package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Carat Float `json:"carat"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"carat": 12.5}`), &payload))
	assert.Equal(t, Float(12.5), payload.Carat)

	require.NoError(t, json.Unmarshal([]byte(`{"carat": "12.5"}`), &payload))
	assert.Equal(t, Float(12.5), payload.Carat)

	err := json.Unmarshal([]byte(`{"carat": "not a number"}`), &payload)
	require.Error(t, err)
}

func TestInt_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Count Int `json:"count"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"count": 3}`), &payload))
	assert.Equal(t, Int(3), payload.Count)

	require.NoError(t, json.Unmarshal([]byte(`{"count": "3"}`), &payload))
	assert.Equal(t, Int(3), payload.Count)

	err := json.Unmarshal([]byte(`{"count": "three"}`), &payload)
	require.Error(t, err)
}
