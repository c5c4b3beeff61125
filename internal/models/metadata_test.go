package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Metadata
	}{
		{"bytes", []byte(`{"note":"rent"}`), Metadata{"note": "rent"}},
		{"string", `{"note":"rent"}`, Metadata{"note": "rent"}},
		{"empty object", []byte(`{}`), Metadata{}},
		{"null column", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Metadata
			require.NoError(t, m.Scan(tt.value))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMetadataScan_RejectsUnsupportedType(t *testing.T) {
	var m Metadata
	assert.Error(t, m.Scan(42))
}

func TestMetadataValue(t *testing.T) {
	v, err := Metadata{"note": "rent"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"rent"}`, string(v.([]byte)))

	empty, err := Metadata(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), empty)
}
