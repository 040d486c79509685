package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tsgen/dialect"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, dialect.MySQL, c.Dialect)
	assert.Len(t, c.Targets, 3)
	assert.True(t, c.Directives)
	assert.Equal(t, DefaultHeader, c.Header)
	assert.Positive(t, c.Workers)
}

func TestConfigOptions(t *testing.T) {
	t.Run("dialect", func(t *testing.T) {
		c, err := NewConfig(WithDialect(dialect.Postgres))
		require.NoError(t, err)
		assert.Equal(t, dialect.Postgres, c.Dialect)
	})
	t.Run("invalid dialect", func(t *testing.T) {
		_, err := NewConfig(WithDialect("oracle"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingConfig)
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "Dialect", ce.Option)
	})
	t.Run("empty targets", func(t *testing.T) {
		_, err := NewConfig(WithTargets())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingConfig)
	})
	t.Run("overrides merge", func(t *testing.T) {
		c, err := NewConfig(
			WithOverrides(map[string]string{"uuid": "z.string().uuid()"}),
			WithOverrides(map[string]string{"citext": "z.string()"}),
		)
		require.NoError(t, err)
		assert.Len(t, c.Overrides, 2)
	})
	t.Run("invalid workers", func(t *testing.T) {
		_, err := NewConfig(WithWorkers(0))
		require.Error(t, err)
	})
	t.Run("empty out dir", func(t *testing.T) {
		_, err := NewConfig(WithOutDir(""))
		require.Error(t, err)
	})
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, WithOutDir(filepath.Join(dir, "generated")))

	files := []File{
		{Name: "schemas.ts", Body: "export const a = 1;\n"},
		{Name: "types.ts", Body: "export type A = number;\n"},
	}
	require.NoError(t, c.Write(context.Background(), files))

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(c.OutDir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Body, string(data))
	}

	// No temp files left behind.
	entries, err := os.ReadDir(c.OutDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, WithDialect(dialect.Postgres), WithOutDir(dir))

	require.NoError(t, c.Generate(context.Background(), testSnapshot()))

	data, err := os.ReadFile(filepath.Join(dir, "db.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export interface DB {")
}
