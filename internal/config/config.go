// Package config builds the runtime configuration that scopes every
// workflow action: the remote platform's base URL and credentials, the
// default org/app/blockchain/storage to stamp onto a plan, and CLI
// behavior flags. It layers, in increasing priority, a local TOML
// file, a .env file, process environment variables, and CLI flags
// bound through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigDir is the directory, relative to the project root, holding
// both the local TOML config and the resumable workflow state files.
const ConfigDir = ".simba-deploy"

// LocalConfigFile is the optional TOML file overriding defaults for
// org/app/blockchain/storage scoping.
const LocalConfigFile = "config.toml"

// RuntimeConfig is the fully resolved configuration a Driver run needs.
type RuntimeConfig struct {
	ProjectRoot string `mapstructure:"project_root"`

	PlatformURL string `mapstructure:"platform_url"`
	APIKey      string `mapstructure:"api_key"`

	Org        string `mapstructure:"org"`
	AppName    string `mapstructure:"app_name"`
	Blockchain string `mapstructure:"blockchain"`
	Storage    string `mapstructure:"storage"`

	Debug          bool          `mapstructure:"debug"`
	NonInteractive bool          `mapstructure:"non_interactive"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// localFile is the optional .simba-deploy/config.toml shape.
type localFile struct {
	PlatformURL string `toml:"platform_url"`
	Org         string `toml:"org"`
	AppName     string `toml:"app_name"`
	Blockchain  string `toml:"blockchain"`
	Storage     string `toml:"storage"`
}

// SetupViper configures a viper instance bound to cmd's flags, the
// SIMBA_* environment prefix, and the local TOML file if present.
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	replacer := strings.NewReplacer("-", "_", ".", "_")

	v.SetEnvPrefix("SIMBA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(replacer)

	v.SetDefault("project_root", projectRoot)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := replacer.Replace(f.Name)
		if err := v.BindPFlag(name, f); err != nil {
			panic(err)
		}
	})

	return v
}

// Provider builds a RuntimeConfig from viper bindings plus the
// optional local TOML file, for google/wire to supply the App
// container.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving project root: %w", err)
		}
		projectRoot = wd
	}
	if !filepath.IsAbs(projectRoot) {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("resolving project root: %w", err)
		}
		projectRoot = abs
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		PlatformURL:    v.GetString("platform_url"),
		APIKey:         v.GetString("api_key"),
		Org:            v.GetString("org"),
		AppName:        v.GetString("app_name"),
		Blockchain:     v.GetString("blockchain"),
		Storage:        v.GetString("storage"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
	}

	if local, err := loadLocalFile(projectRoot); err == nil && local != nil {
		if cfg.PlatformURL == "" {
			cfg.PlatformURL = local.PlatformURL
		}
		if cfg.Org == "" {
			cfg.Org = local.Org
		}
		if cfg.AppName == "" {
			cfg.AppName = local.AppName
		}
		if cfg.Blockchain == "" {
			cfg.Blockchain = local.Blockchain
		}
		if cfg.Storage == "" {
			cfg.Storage = local.Storage
		}
	} else if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	return cfg, nil
}

// loadLocalFile reads .simba-deploy/config.toml if present, returning
// (nil, nil) when it does not exist.
func loadLocalFile(projectRoot string) (*localFile, error) {
	path := filepath.Join(projectRoot, ConfigDir, LocalConfigFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var lf localFile
	if _, err := toml.DecodeFile(path, &lf); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &lf, nil
}

// Validate checks that a RuntimeConfig carries enough to talk to the
// remote platform.
func (c *RuntimeConfig) Validate() error {
	if c.PlatformURL == "" {
		return fmt.Errorf("platform_url is required (set SIMBA_PLATFORM_URL or %s/%s)", ConfigDir, LocalConfigFile)
	}
	if c.Org == "" {
		return fmt.Errorf("org is required (set SIMBA_ORG or %s/%s)", ConfigDir, LocalConfigFile)
	}
	if c.Blockchain == "" {
		return fmt.Errorf("blockchain is required (set SIMBA_BLOCKCHAIN or %s/%s)", ConfigDir, LocalConfigFile)
	}
	return nil
}
