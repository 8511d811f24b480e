package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecimal(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   string
	}{
		{"one place", 87.34, 1, "87.3"},
		{"rounds half away from zero", 0.125, 2, "0.13"},
		{"two places", 0.9149, 2, "0.91"},
		{"keeps trailing zero", 0.9, 2, "0.90"},
		{"float noise", 65.10000000000001, 1, "65.1"},
		{"negative places", 12.7, -1, "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecimal(tt.value, tt.places)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, 1, NewDecimal(72.25, 1).Places())
	assert.Equal(t, 2, NewDecimal(0.855, 2).Places())
	assert.Equal(t, 0, NewDecimal(3, 0).Places())
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("91.5")
	require.NoError(t, err)
	assert.Equal(t, "91.5", d.String())
	assert.InDelta(t, 91.5, d.Float64(), 1e-9)

	_, err = ParseDecimal("")
	assert.Error(t, err)

	_, err = ParseDecimal("ninety")
	assert.Error(t, err)
}

func TestDecimalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Confidence Decimal  `json:"confidence"`
		Unset      Decimal  `json:"unset"`
		Ptr        *Decimal `json:"ptr,omitempty"`
	}{Confidence: NewDecimal(0.9, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"confidence":0.90,"unset":null}`, string(data))

	var out struct {
		Confidence Decimal `json:"confidence"`
		Unset      Decimal `json:"unset"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "0.90", out.Confidence.String())
	assert.True(t, out.Unset.IsZero())
}
