package fieldode

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfgLoaded = false
	t.Setenv("FIELDODE_CONFIG", "")
	conf := ReadConfig()
	require.Equal(t, ".", conf.OutputDir)
	require.Equal(t, 50, conf.NumNodes)
	require.Equal(t, 0.1, conf.TimeStep)
	require.Equal(t, 100, conf.NumSteps)
	require.Equal(t, "identity", conf.Reaction)
	// The configuration is cached after the first load.
	if !cfgLoaded {
		t.Fatal("configuration not cached")
	}
}

func TestReadConfigFromFile(t *testing.T) {
	confDir := t.TempDir()
	err := os.WriteFile(fmt.Sprintf("%s/conf.toml", confDir), []byte(`[general]
output_path = "/tmp/fieldode-out"

[field]
nodes = 128
dt = 0.05
steps = 400
reaction = "logistic"
`), 0o644)
	require.NoError(t, err)

	cfgLoaded = false
	t.Setenv("FIELDODE_CONFIG", confDir)
	conf := ReadConfig()
	require.Equal(t, "/tmp/fieldode-out", conf.OutputDir)
	require.Equal(t, 128, conf.NumNodes)
	require.Equal(t, 0.05, conf.TimeStep)
	require.Equal(t, 400, conf.NumSteps)
	require.Equal(t, "logistic", conf.Reaction)

	cfgLoaded = false // don't leak this file into other tests
}
