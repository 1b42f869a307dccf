package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the database directory.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the database location from a .estuday config file or
// ESTUDAY_* environment variables, defaulting to ~/.estuday.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.estuday.db")
	viper.SetConfigName(".estuday") // .yaml is implicit
	viper.SetEnvPrefix("ESTUDAY")
	viper.AutomaticEnv()

	if override := os.Getenv("ESTUDAY_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
