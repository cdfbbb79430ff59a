package scalar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind Kind
		want any
	}{
		{name: "string", json: `"hello"`, kind: String, want: "hello"},
		{name: "integral number binds as int64", json: `5`, kind: Number, want: int64(5)},
		{name: "negative integral", json: `-42`, kind: Number, want: int64(-42)},
		{name: "float", json: `3.25`, kind: Number, want: 3.25},
		{name: "bool", json: `true`, kind: Bool, want: true},
		{name: "null", json: `null`, kind: Null, want: nil},
		{name: "string that looks numeric stays string", json: `"5"`, kind: String, want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.want, v.Driver())
		})
	}
}

func TestUnmarshalTime(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:30:00Z"`), &v))

	assert.Equal(t, Time, v.Kind())
	ts, ok := v.Driver().(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ts.UTC())
}

func TestUnmarshalDateOnlyStringStaysString(t *testing.T) {
	// Not full RFC 3339, so it binds as text and the server decides
	// how to compare it.
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &v))
	assert.Equal(t, String, v.Kind())
}

func TestUnmarshalRejectsComposites(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "array", json: `[1, 2, 3]`},
		{name: "object", json: `{"nested": true}`},
		{name: "array of strings", json: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			err := json.Unmarshal([]byte(tt.json), &v)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotScalar)
		})
	}
}

func TestUnmarshalParameterMap(t *testing.T) {
	var params map[string]Value
	require.NoError(t, json.Unmarshal([]byte(`{"id": 5, "name": "ada", "active": true}`), &params))

	assert.Equal(t, int64(5), params["id"].Driver())
	assert.Equal(t, "ada", params["name"].Driver())
	assert.Equal(t, true, params["active"].Driver())
}
