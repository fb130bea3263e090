package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
)

const (
	EnvPrefix = "JOLTARCHIVE"
	FileName  = "config.yaml"
)

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file.
// Without a custom path it looks into the default dirs and falls back to
// the struct defaults when no file is there.
// Reads and puts environment variables with the prefix JOLTARCHIVE_.
// Params from the config should be in uppercase separated with _.
func LoadConfig(config any, path string) error {
	if path != "" {
		return fig.Load(config,
			fig.File(filepath.Base(path)),
			fig.Dirs(filepath.Dir(path)),
			fig.UseEnv(EnvPrefix),
		)
	}

	dirs := []string{".", "configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".joltarchive"))
	}
	err := fig.Load(config, fig.File(FileName), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return LoadConfigEnv(config)
	}
	return err
}

func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}

// Load returns the archiver config.
func Load(path string) (*Config, error) {
	var conf Config
	if err := LoadConfig(&conf, path); err != nil {
		return nil, err
	}
	return &conf, nil
}
