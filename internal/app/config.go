package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"passvault/internal/crypto"
)

const (
	configName = "passvault"
	envPrefix  = "PASSVAULT"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home string     `mapstructure:"home" validate:"required"` // base directory, e.g. $HOME/.passvault
	Log  LogConfig  `mapstructure:"log"`
	Hash HashConfig `mapstructure:"hash"`
}

// LogConfig selects the logger's verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// HashConfig selects how new account passwords are digested.
type HashConfig struct {
	Scheme  string `mapstructure:"scheme" validate:"oneof=sha256 scrypt"`
	ScryptN int    `mapstructure:"scrypt_n" validate:"gt=1,lte=1048576"`
}

// DefaultHome returns ~/.passvault, or .passvault when the home directory
// cannot be resolved.
func DefaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".passvault"
	}
	return filepath.Join(dir, ".passvault")
}

// Defaults returns the default value of every config key.
func Defaults() map[string]any {
	return map[string]any{
		"home":          DefaultHome(),
		"log.level":     "info",
		"log.format":    "console",
		"hash.scheme":   string(crypto.SchemeSHA256),
		"hash.scrypt_n": crypto.DefaultScryptN,
	}
}

// BindFlags maps command-line flags onto config keys. Unknown flag names
// are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// LoadConfig resolves the configuration from, in increasing precedence,
// defaults, the config file, PASSVAULT_* environment variables and bound
// flags. Without configFile, passvault.yaml is looked up in the home
// directory and the working directory; its absence is not an error.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("home"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
