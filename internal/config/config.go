package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DMPFile       string   `mapstructure:"dmp_file" yaml:"dmp_file"`
	TakenFile     string   `mapstructure:"total_taken_file" yaml:"total_taken_file"`
	TooFarRegions []string `mapstructure:"too_far_regions" yaml:"too_far_regions"`
	Exclusions    []string `mapstructure:"exclusions" yaml:"exclusions"`
	ExcludePPReq  bool     `mapstructure:"exclude_pp_req" yaml:"exclude_pp_req"`
	// Permits per square mile assumed for "max" targets
	MaxDMPsPerSqMile float64 `mapstructure:"max_dmps_per_sq_mile" yaml:"max_dmps_per_sq_mile"`
	TopN             int     `mapstructure:"top_n" yaml:"top_n"`
	OutputFormat     string  `mapstructure:"output_format" yaml:"output_format"`
}

// Defaults mirrors the values Load falls back to.
func Defaults() Global {
	return Global{
		DMPFile:          "dmp.csv",
		TakenFile:        "total_taken.csv",
		TooFarRegions:    []string{"1", "2", "8", "9"},
		Exclusions:       []string{"4T", "7H", "6G"},
		MaxDMPsPerSqMile: 50,
		TopN:             10,
		OutputFormat:     "table",
	}
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dmp", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dmp/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DMP")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("dmp_file", d.DMPFile)
	v.SetDefault("total_taken_file", d.TakenFile)
	v.SetDefault("too_far_regions", d.TooFarRegions)
	v.SetDefault("exclusions", d.Exclusions)
	v.SetDefault("exclude_pp_req", d.ExcludePPReq)
	v.SetDefault("max_dmps_per_sq_mile", d.MaxDMPsPerSqMile)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("output_format", d.OutputFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".dmp"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TopN < 0 {
		return nil, fmt.Errorf("invalid top_n: %d", c.TopN)
	}
	if c.MaxDMPsPerSqMile <= 0 {
		return nil, fmt.Errorf("invalid max_dmps_per_sq_mile: %v", c.MaxDMPsPerSqMile)
	}
	// an empty prefix matches every identifier
	for key, list := range map[string][]string{"too_far_regions": c.TooFarRegions, "exclusions": c.Exclusions} {
		for _, p := range list {
			if strings.TrimSpace(p) == "" {
				return nil, fmt.Errorf("invalid %s: empty prefix", key)
			}
		}
	}
	return &c, nil
}
