package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"cleanpath/internal/model"
)

// AppName names the config directory and environment prefix.
const AppName = "cleanpath"

// File is the on-disk defaults layer. Flags toggle or override these values.
type File struct {
	Delimiter          string   `mapstructure:"delimiter"`
	DiscardEmpty       bool     `mapstructure:"discard_empty"`
	RemoveDupes        bool     `mapstructure:"remove_dupes"`
	CheckExists        bool     `mapstructure:"check_exists"`
	OnlyExecutableDirs bool     `mapstructure:"only_executable_dirs"`
	DirsOnly           bool     `mapstructure:"dirs_only"`
	Exclude            []string `mapstructure:"exclude"`
	Shell              string   `mapstructure:"shell"`
	OutputUnchanged    bool     `mapstructure:"output_unchanged"`
	Verbosity          int      `mapstructure:"verbosity"`
	Update             Update   `mapstructure:"update"`
}

// Update points --update at a GitHub repository publishing releases.
type Update struct {
	Owner      string `mapstructure:"owner"`
	Repository string `mapstructure:"repository"`
}

// DefaultConfigPath is $XDG_CONFIG_HOME/cleanpath/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads the defaults file at cfgFile, or the default location when
// cfgFile is empty. A missing default file is not an error; an explicitly
// named file must exist. CLEANPATH_* environment variables override keys.
func Load(cfgFile string) (*File, error) {
	v := viper.New()

	def := model.DefaultFilterConfig()
	v.SetDefault("delimiter", string(def.Delimiter))
	v.SetDefault("discard_empty", def.DiscardEmpty)
	v.SetDefault("remove_dupes", def.RemoveDupes)
	v.SetDefault("check_exists", def.CheckExists)
	v.SetDefault("only_executable_dirs", def.OnlyExecutableDirs)
	v.SetDefault("dirs_only", def.DirsOnly)
	v.SetDefault("exclude", []string{})
	v.SetDefault("shell", "bash")
	v.SetDefault("output_unchanged", false)
	v.SetDefault("verbosity", 0)
	v.SetDefault("update.owner", "")
	v.SetDefault("update.repository", "")

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := cfgFile != ""
	if explicit {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.SetConfigFile(DefaultConfigPath())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &f, nil
}

// FilterConfig converts the file layer into a FilterConfig.
func (f *File) FilterConfig() (model.FilterConfig, error) {
	delim, err := parseDelimiter(f.Delimiter)
	if err != nil {
		return model.FilterConfig{}, err
	}
	return model.FilterConfig{
		Delimiter:          delim,
		DiscardEmpty:       f.DiscardEmpty,
		RemoveDupes:        f.RemoveDupes,
		CheckExists:        f.CheckExists,
		OnlyExecutableDirs: f.OnlyExecutableDirs,
		DirsOnly:           f.DirsOnly,
		Exclude:            append([]string(nil), f.Exclude...),
	}, nil
}

func parseDelimiter(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return s[0], nil
}
