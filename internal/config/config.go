package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appDir = ".go_sdm"

var (
	configData Config
	v          *viper.Viper
	configFile string
	flagBinds  = make(map[string]*pflag.Flag)
)

// Config holds all configuration settings.
type Config struct {
	// Server configuration
	Server struct {
		Host string
		Port int
	}
	// SDM keys, hex encoded AES-128
	Keys struct {
		Meta string
		File string
	}
	// SUN verification options
	SDM struct {
		Filler         string
		MACParam       string `mapstructure:"mac_param"`
		RequireCounter bool   `mapstructure:"require_counter"`
		UniformTiming  bool   `mapstructure:"uniform_timing"`
	}
	// Logging configuration
	Log struct {
		Level  string
		Format string
	}
}

// Initialize sets up the configuration system.
func Initialize() error {
	v = viper.New()
	configData = Config{}

	// Set config name and paths
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.SetConfigName("config")          // name of config file (without extension)
	v.SetConfigType("yaml")            // config file type
	v.AddConfigPath(".")               // optionally look for config in working directory
	v.AddConfigPath("$HOME/" + appDir) // look for config in .go_sdm directory in home
	v.AddConfigPath("/etc/go_sdm/")    // path to look for the config file in

	setDefaults()

	for key, flag := range flagBinds {
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag.Name, err)
		}
	}

	// Environment variables
	v.SetEnvPrefix("GOSDM") // prefix for env vars
	v.AutomaticEnv()        // read in environment variables that match
	v.SetEnvKeyReplacer(    // replace dots with underscores in env vars
		strings.NewReplacer(".", "_"),
	)

	if err := ensureConfig(); err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if we can't find a config file, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&configData); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return nil
}

// SetConfigFile makes Initialize read path instead of searching the config paths.
func SetConfigFile(path string) {
	configFile = path
}

// flagKeyAnnotation names the pflag annotation holding a flag's config key.
const flagKeyAnnotation = "go_sdm_config_key"

// MarkFlagKey records that flag name overrides config key when set on the command line.
func MarkFlagKey(flags *pflag.FlagSet, name, key string) {
	_ = flags.SetAnnotation(name, flagKeyAnnotation, []string{key})
}

// BindMarkedFlags replaces the flag bindings applied by Initialize with the
// marked flags of flags.
func BindMarkedFlags(flags *pflag.FlagSet) {
	clear(flagBinds)
	flags.VisitAll(func(f *pflag.Flag) {
		if keys := f.Annotations[flagKeyAnnotation]; len(keys) == 1 {
			flagBinds[keys[0]] = f
		}
	})
}

// setDefaults sets default values for all configuration options.
func setDefaults() {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 1500)

	v.SetDefault("keys.meta", "")
	v.SetDefault("keys.file", "")

	v.SetDefault("sdm.filler", "x")
	v.SetDefault("sdm.mac_param", "sdmmac")
	v.SetDefault("sdm.require_counter", true)
	v.SetDefault("sdm.uniform_timing", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
}

// ensureConfig creates a default config file if none exists.
func ensureConfig() error {
	dir := filepath.Join(os.Getenv("HOME"), appDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := `# GO SDM Configuration File
server:
  host: localhost
  port: 1500

keys:
  meta: ""
  file: ""

sdm:
  filler: x
  mac_param: sdmmac
  require_counter: true
  uniform_timing: true

log:
  level: info
  format: human
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o600); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the current configuration.
func Get() *Config {
	return &configData
}

// GetViper returns the viper instance.
func GetViper() *viper.Viper {
	return v
}

// Filler returns the configured filler byte, falling back to 'x'.
func (c *Config) Filler() byte {
	if c.SDM.Filler == "" {
		return 'x'
	}

	return c.SDM.Filler[0]
}

// VerifierOptions returns the verifier options selected by the sdm section.
func (c *Config) VerifierOptions() []sdm.Option {
	opts := []sdm.Option{
		sdm.WithFiller(c.Filler()),
		sdm.WithCounterRequired(c.SDM.RequireCounter),
		sdm.WithUniformTiming(c.SDM.UniformTiming),
	}
	if c.SDM.MACParam != "" {
		opts = append(opts, sdm.WithMACParameter(c.SDM.MACParam))
	}

	return opts
}
