package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mediagrab/internal/dirs"
)

// EnvPrefix prefixes every environment override, e.g. MEDIAGRAB_OUTFOLDER.
const EnvPrefix = "MEDIAGRAB"

// Keys bound to root flags. Flag names use dashes, keys use underscores.
var flagKeys = map[string]string{
	"dl_binary":       "dl-binary",
	"ffmpeg_location": "ffmpeg-location",
	"archive":         "archive",
	"verbose":         "verbose",
	"url":             "url",
	"outfolder":       "outfolder",
	"format":          "format",
	"quality":         "quality",
	"video":           "video",
	"template":        "template",
	"clipboard":       "clipboard",
}

// Init wires Viper with config paths, env, and flag bindings.
// Precedence: flag > env > config file > flag default.
// A missing config file is ignored unless cfgFile names it explicitly.
func Init(root *cobra.Command, cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if cfgDir, err := dirs.ConfigDir(); err == nil {
			viper.AddConfigPath(cfgDir)
		}
		viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, name := range flagKeys {
		f := root.PersistentFlags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Used returns the config file that was read, if any.
func Used() string {
	return viper.ConfigFileUsed()
}
