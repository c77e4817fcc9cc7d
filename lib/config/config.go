package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-i2p/go-rtshim/lib/util"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	// CfgFile is an explicit config file path, usually set from a flag.
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const (
	// BaseDirName is the per-user config directory under the home directory.
	BaseDirName = ".rtshim"
	// ConfigName is the config file name viper searches for.
	ConfigName = "rtshim"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "RTSHIM"
)

// InitConfig points viper at the config sources, installs the defaults and
// reads the config file if there is one.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildDirPath())
		viper.AddConfigPath(".")
		viper.SetConfigName(ConfigName)
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()
	return readConfigFile()
}

func readConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithFields(logger.Fields{
			"at":   "config.readConfigFile",
			"file": viper.ConfigFileUsed(),
		}).Debug("using_config_file")
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok && CfgFile == "" {
		log.WithFields(logger.Fields{
			"at":     "config.readConfigFile",
			"reason": "no_config_file",
		}).Debug("using_defaults")
		return nil
	}
	return oops.In("config").Wrapf(err, "failed to read config file %q", CfgFile)
}

// SetDefaults registers Defaults with viper.
func SetDefaults() {
	d := Defaults()

	viper.SetDefault("assert.output", d.Assert.Output)
	viper.SetDefault("assert.rate_limit", d.Assert.RateLimit)
	viper.SetDefault("assert.burst", d.Assert.Burst)
	viper.SetDefault("assert.settle", d.Assert.Settle)
	viper.SetDefault("assert.history", d.Assert.History)

	viper.SetDefault("critical.platform", d.Critical.Platform)

	viper.SetDefault("shim.banner", d.Shim.Banner)
	viper.SetDefault("shim.trace", d.Shim.Trace)
}

// NewRuntimeConfigFromViper builds a RuntimeConfig from the current viper
// settings.
func NewRuntimeConfigFromViper() RuntimeConfig {
	return RuntimeConfig{
		Assert: AssertConfig{
			Output:    strings.ToLower(viper.GetString("assert.output")),
			RateLimit: viper.GetFloat64("assert.rate_limit"),
			Burst:     viper.GetInt("assert.burst"),
			Settle:    viper.GetDuration("assert.settle"),
			History:   viper.GetInt("assert.history"),
		},
		Critical: CriticalConfig{
			Platform: strings.ToLower(viper.GetString("critical.platform")),
		},
		Shim: ShimConfig{
			Banner: viper.GetBool("shim.banner"),
			Trace:  viper.GetBool("shim.trace"),
		},
	}
}

// WriteConfig writes cfg as YAML to path, creating parent directories.
func WriteConfig(cfg RuntimeConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return oops.In("config").Wrapf(err, "failed to encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.In("config").Wrapf(err, "could not create config directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oops.In("config").Wrapf(err, "could not write config file %s", path)
	}
	log.WithFields(logger.Fields{
		"at":   "config.WriteConfig",
		"file": path,
	}).Debug("wrote_config_file")
	return nil
}

// BuildDirPath returns $HOME/.rtshim.
func BuildDirPath() string {
	return filepath.Join(util.UserHome(), BaseDirName)
}

// DefaultConfigPath returns the config file InitConfig looks for first.
func DefaultConfigPath() string {
	return filepath.Join(BuildDirPath(), ConfigName+".yaml")
}

// ConfigFileUsed reports the file viper loaded, if any.
func ConfigFileUsed() string {
	if f := viper.ConfigFileUsed(); f != "" && util.CheckFileExists(f) {
		return f
	}
	return ""
}
