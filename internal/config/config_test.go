package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.BillablePercentage)
	assert.Equal(t, 8, cfg.HoursPerDay)
	assert.Empty(t, cfg.Connectors)
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
billable_percentage = 0.9
hours_per_day = 6

[days_per_month]
"2023-06" = "18"

[connectors.work]
type = "rest"
base_url = "https://api.tickets.test"
browse_url = "https://tickets.test"
token = "secret"
cache_ttl_seconds = 300
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.BillablePercentage)
	assert.Equal(t, 6, cfg.HoursPerDay)

	override, ok := cfg.DaysOverride("2023-06")
	require.True(t, ok)
	assert.Equal(t, "18", override)

	work, ok := cfg.Connectors["work"]
	require.True(t, ok)
	assert.Equal(t, "rest", work.Type)
	assert.Equal(t, "https://api.tickets.test", work.BaseURL)
	assert.Equal(t, "secret", work.Token)
	assert.Equal(t, 300, work.CacheTTLSeconds)
}

func TestSetDaysOverride_ReadModifyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
billable_percentage = 0.9

[connectors.work]
type = "rest"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetDaysOverride("2023-06", "1,2,15"))

	override, ok := cfg.DaysOverride("2023-06")
	require.True(t, ok)
	assert.Equal(t, "1,2,15", override)

	// Other settings survive the rewrite.
	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 0.9, reloaded.BillablePercentage)
	assert.Contains(t, reloaded.Connectors, "work")

	override, ok = reloaded.DaysOverride("2023-06")
	require.True(t, ok)
	assert.Equal(t, "1,2,15", override)
}

func TestSetDaysOverride_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetDaysOverride("2023-07", "20"))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	override, ok := reloaded.DaysOverride("2023-07")
	require.True(t, ok)
	assert.Equal(t, "20", override)
}
