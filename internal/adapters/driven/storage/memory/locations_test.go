package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationTable_CopiesInput(t *testing.T) {
	src := map[string]string{"Berlin": "DE"}
	table := NewLocationTable(src)
	src["Paris"] = "FR"

	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup("Paris")
	assert.False(t, ok)
}

func TestLocationTable_Lookup(t *testing.T) {
	table := NewLocationTable(map[string]string{
		"San Francisco, CA": "US",
		"Berlin":            "DE",
	})

	tests := []struct {
		raw  string
		code string
		ok   bool
	}{
		{"San Francisco, CA", "US", true},
		{"Berlin", "DE", true},
		{"berlin", "", false},
		{"Berlin ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			code, ok := table.Lookup(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestLocationTable_SetKeysMap(t *testing.T) {
	table := NewLocationTable(nil)
	table.Set("Tokyo", "JP")
	table.Set("Berlin", "DE")
	table.Set("Tokyo", "JP2")

	assert.Equal(t, []string{"Berlin", "Tokyo"}, table.Keys())
	m := table.Map()
	assert.Equal(t, "JP2", m["Tokyo"])

	m["Tokyo"] = "changed"
	code, _ := table.Lookup("Tokyo")
	assert.Equal(t, "JP2", code)
}

func TestParseLocationTable(t *testing.T) {
	data := []byte(`
"San Francisco, CA" = "US"
Berlin = "DE"
"München" = "DE"
`)
	table, err := ParseLocationTable(data)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	code, ok := table.Lookup("München")
	require.True(t, ok)
	assert.Equal(t, "DE", code)
}

func TestParseLocationTable_Invalid(t *testing.T) {
	_, err := ParseLocationTable([]byte("not = [valid"))
	assert.Error(t, err)
}

func TestLoadLocationTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locations.toml")
	require.NoError(t, os.WriteFile(path, []byte(`London = "GB"`), 0o600))

	table, err := LoadLocationTable(path)
	require.NoError(t, err)
	code, ok := table.Lookup("London")
	assert.True(t, ok)
	assert.Equal(t, "GB", code)

	_, err = LoadLocationTable(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
