package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"code.cloudfoundry.org/bytefmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Settings is the raw configuration as merged by viper from defaults,
// config file, environment and flags.
type Settings struct {
	All         bool     `mapstructure:"all"`
	Extensions  []string `mapstructure:"extension"`
	Regex       string   `mapstructure:"regex"`
	Sort        string   `mapstructure:"sort"`
	Long        bool     `mapstructure:"long"`
	MaxDepth    int      `mapstructure:"max_depth"`
	Exclude     []string `mapstructure:"exclude"`
	MaxSize     string   `mapstructure:"max_size"`
	GitIgnore   bool     `mapstructure:"gitignore"`
	ASCII       bool     `mapstructure:"ascii"`
	Color       string   `mapstructure:"color"`
	Output      string   `mapstructure:"output"`
	JSON        string   `mapstructure:"json"`
	Pager       bool     `mapstructure:"pager"`
	Clipboard   bool     `mapstructure:"clipboard"`
	PDF         string   `mapstructure:"pdf"`
	Interactive bool     `mapstructure:"interactive"`
	Verbose     bool     `mapstructure:"verbose"`
}

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("all", false)
	v.SetDefault("sort", "name")
	v.SetDefault("long", false)
	v.SetDefault("max_depth", 0)
	v.SetDefault("max_size", "")
	v.SetDefault("gitignore", false)
	v.SetDefault("ascii", false)
	v.SetDefault("color", colorAuto)
	v.SetDefault("pager", false)
}

// readConfigFile loads the config file named by cfgFile, or searches
// $HOME/.config/mytree and the working directory for config.toml.
func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mytree"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("MYTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug("no config file found, using defaults and flags")
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	log.Debugf("using config file %s", v.ConfigFileUsed())
	return nil
}

func loadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, invalidInput("invalid configuration", "", err)
	}
	return s, nil
}

// options validates the settings into Options for a tree rooted at root.
func (s Settings) options(root string) (*Options, error) {
	exts, err := parseExtensions(s.Extensions)
	if err != nil {
		return nil, err
	}
	key, err := parseSortKey(s.Sort)
	if err != nil {
		return nil, err
	}
	excludes, err := compilePatterns(splitList(s.Exclude))
	if err != nil {
		return nil, err
	}
	maxSize, err := parseSize(s.MaxSize)
	if err != nil {
		return nil, err
	}
	if s.MaxDepth < 0 {
		return nil, invalidInput("invalid max depth", strconv.Itoa(s.MaxDepth), nil)
	}
	if err := s.checkJSONSinks(); err != nil {
		return nil, err
	}

	opts := &Options{
		Filter: FilterConfig{
			ShowHidden: s.All,
			Extensions: exts,
			Exclude:    excludes,
			MaxSize:    maxSize,
		},
		SortKey:  key,
		MaxDepth: s.MaxDepth,
		Long:     s.Long,
	}
	if s.Regex != "" {
		re, err := regexp.Compile(s.Regex)
		if err != nil {
			return nil, invalidInput("invalid regex", s.Regex, err)
		}
		opts.Filter.Regex = re
	}
	if s.GitIgnore {
		opts.Filter.Ignore = loadGitIgnore(root)
	}
	if s.ASCII || s.PDF != "" {
		opts.Charset = CharsetASCII
	}
	return opts, nil
}

// checkJSONSinks rejects text sinks combined with --json, which only writes
// to its own destination or a PDF.
func (s Settings) checkJSONSinks() error {
	if s.JSON == "" {
		return nil
	}
	switch {
	case s.Output != "":
		return invalidInput("--json cannot be combined with", "--output", nil)
	case s.Clipboard:
		return invalidInput("--json cannot be combined with", "--clipboard", nil)
	case s.Pager:
		return invalidInput("--json cannot be combined with", "--pager", nil)
	}
	return nil
}

// splitList flattens comma-separated values, which is how list settings
// arrive from environment variables.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseExtensions normalizes extension tokens to lower case without a
// leading dot. Tokens that could never equal an entry's extension are
// rejected.
func parseExtensions(tokens []string) (map[string]struct{}, error) {
	exts := make(map[string]struct{})
	for _, token := range splitList(tokens) {
		ext := strings.ToLower(strings.TrimPrefix(token, "."))
		if ext == "" || strings.ContainsAny(ext, `./\*?`) || strings.IndexFunc(ext, unicode.IsSpace) >= 0 {
			return nil, invalidInput("invalid extension", token, nil)
		}
		exts[ext] = struct{}{}
	}
	return exts, nil
}

func parseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name", "alpha", "alphabetical":
		return SortAlphabetical, nil
	case "size", "filesize":
		return SortFileSize, nil
	case "mtime", "time", "modified", "lastupdatedtimestamp":
		return SortLastUpdated, nil
	default:
		return SortAlphabetical, invalidInput("unknown sort key", s, nil)
	}
}

// parseSize accepts plain byte counts ("1048576") and unit sizes ("10M", "1.5 GB").
func parseSize(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		b, err := bytefmt.ToBytes(strings.ReplaceAll(s, " ", ""))
		if err != nil {
			return 0, invalidInput("invalid size", s, err)
		}
		return b, nil
	}
	b, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalidInput("invalid size", s, err)
	}
	return b, nil
}

func parseColorMode(s string) (string, error) {
	switch mode := strings.ToLower(strings.TrimSpace(s)); mode {
	case "", colorAuto:
		return colorAuto, nil
	case colorAlways, colorNever:
		return mode, nil
	default:
		return "", invalidInput("unknown color mode", s, nil)
	}
}
