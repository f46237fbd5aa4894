package store

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the terminal's tunables: where the database lives, the
// shell prompt, and the secret word gating the session.
type Config interface {
	BasePath() string
	Prompt() string
	Secret() string
}

// LoadConfig reads .mycmd.yaml from the working directory (or
// MYCMD_CONFIG_PATH) with MYCMD_* env overrides and built-in defaults.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.mycmd.db")
	viper.SetDefault("prompt", "root@mycmd:~$ ")
	viper.SetDefault("secret", "zoro")
	viper.SetConfigName(".mycmd") // .yaml is implicit
	viper.SetEnvPrefix("MYCMD")
	viper.AutomaticEnv()

	if override := os.Getenv("MYCMD_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{
		Path:        path,
		ShellPrompt: viper.GetString("prompt"),
		SecretWord:  viper.GetString("secret"),
	}, nil
}

type fileConfig struct {
	Path        string `json:"path"`
	ShellPrompt string `json:"prompt"`
	SecretWord  string `json:"secret"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) Prompt() string   { return f.ShellPrompt }
func (f *fileConfig) Secret() string   { return f.SecretWord }
