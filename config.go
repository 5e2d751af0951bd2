package fieldode

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = RunConfig{}
)

// RunConfig holds the settings read from the configuration file: where to
// write exports and the defaults used by the coupling driver when no flags
// override them.
type RunConfig struct {
	OutputDir string
	NumNodes  int
	TimeStep  float64
	NumSteps  int
	Reaction  string
}

// ReadConfig returns the fieldode configuration. The configuration file
// `conf.toml` is searched in the directory named by the FIELDODE_CONFIG
// environment variable and loaded once per process; without the variable
// the defaults below are returned.
func ReadConfig() RunConfig {
	if cfgLoaded {
		return config
	}
	config = RunConfig{OutputDir: ".", NumNodes: 50, TimeStep: 0.1, NumSteps: 100, Reaction: "identity"}
	confPath := os.Getenv("FIELDODE_CONFIG")
	if confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
		if dir := viper.GetString("general.output_path"); dir != "" {
			config.OutputDir = dir
		}
		if n := viper.GetInt("field.nodes"); n > 0 {
			config.NumNodes = n
		}
		if dt := viper.GetFloat64("field.dt"); dt != 0 {
			config.TimeStep = dt
		}
		if steps := viper.GetInt("field.steps"); steps > 0 {
			config.NumSteps = steps
		}
		if r := viper.GetString("field.reaction"); r != "" {
			config.Reaction = r
		}
	}
	cfgLoaded = true
	return config
}
