// Package config resolves the vault's run-time configuration from
// flags, environment variables, and an optional config file, in that
// precedence order (flags win), the same layering
// kgiusti-go-fdo-server/cmd's own viper setup uses for its server
// flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/redeauxlabs/passvault/internal/kdf"
)

// DefaultDictPath is where "check" looks for a system wordlist when
// neither --dict-path nor PASSVAULT_DICT_PATH is set. Its absence is
// not an error: the check command then falls back to internal/audit's
// small built-in list.
const DefaultDictPath = "/usr/share/dict/words"

// Config is the resolved set of parameters every vault operation runs
// under.
type Config struct {
	DataPath     string
	Jobs         int
	WorkFactor   int
	DictPath     string
	AllowEnvPass bool
	Debug        bool
}

// BindFlags registers the flags shared by every subcommand onto fs and
// binds them into v, so flag > env > file precedence falls out of
// viper's own resolution order.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("data", "", "path to the vault file (default $HOME/.passvault.json)")
	fs.Int("jobs", 0, "number of worker goroutines to scan with (0 = auto)")
	fs.Int("work-factor", kdf.Sentinel, "base-2 log of the scrypt cost parameter for newly written entries")
	fs.String("dict-path", "", "wordlist path used by check (default "+DefaultDictPath+")")
	fs.Bool("allow-env-passphrase", false, "allow PASSVAULT_MAIN to supply the main passphrase")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("config", "", "path to a YAML config file (default $HOME/.passvault.yaml if present)")

	v.SetEnvPrefix("passvault")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(fs)
}

// Load resolves a Config from v after BindFlags has run. It first
// reads a config file into v: the explicit --config path if given, or
// else a best-effort read of $HOME/.passvault.yaml — whose absence is
// not an error, since flags and environment variables alone are a
// perfectly valid way to run.
func Load(v *viper.Viper) (*Config, error) {
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	dataPath := v.GetString("data")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataPath = filepath.Join(home, ".passvault.json")
	}

	dictPath := v.GetString("dict-path")
	if dictPath == "" {
		dictPath = DefaultDictPath
	}

	return &Config{
		DataPath:     dataPath,
		Jobs:         v.GetInt("jobs"),
		WorkFactor:   v.GetInt("work-factor"),
		DictPath:     dictPath,
		AllowEnvPass: v.GetBool("allow-env-passphrase"),
		Debug:        v.GetBool("debug"),
	}, nil
}

// readConfigFile loads a YAML config file into v. An explicit --config
// path is read unconditionally, and any failure to read it (missing
// file, bad YAML) is reported to the caller. With no explicit path, it
// looks for ".passvault.yaml" in $HOME, and treats the file simply not
// being there as fine — a config file has always been optional.
func readConfigFile(v *viper.Viper) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		return v.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.SetConfigName(".passvault")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
