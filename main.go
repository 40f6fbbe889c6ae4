package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version string = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mytree [PATH]",
	Short: "mytree is a terminal tool to visualize your folder structure.",
	Long: `mytree lets you view directory trees with optional hidden files, extension
filtering, regex matching, long-format metadata and JSON output.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var genDocsCmd = &cobra.Command{
	Use:    "gendocs [DIR]",
	Short:  "Generate markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "docs"
		if len(args) == 1 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating %s: %w", dir, err)
		}
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			return fmt.Errorf("error generating docs: %w", err)
		}
		fmt.Printf("Generated docs in %s\n", dir)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mytree/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	bindFlags(viper.GetViper(), rootCmd.Flags())
	setDefaults(viper.GetViper())
	rootCmd.AddCommand(genDocsCmd)
}

// bindFlags defines the command's flags on flags and binds each one to its
// settings key in v, so a set flag overrides the environment and config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	// Filtering
	flags.BoolP("all", "a", false, "Include hidden files and directories")
	v.BindPFlag("all", flags.Lookup("all"))
	flags.StringSliceP("extension", "e", nil, "Filter files by extension (e.g. -e rs -e toml)")
	v.BindPFlag("extension", flags.Lookup("extension"))
	flags.StringP("regex", "r", "", "Filter files by matching their name with a regex")
	v.BindPFlag("regex", flags.Lookup("regex"))
	flags.StringSliceP("exclude", "x", nil, "Exclude entries whose name matches a glob (comma-separated)")
	v.BindPFlag("exclude", flags.Lookup("exclude"))
	flags.String("max-size", "", "Skip files larger than this size (e.g. 10M)")
	v.BindPFlag("max_size", flags.Lookup("max-size"))
	flags.Bool("gitignore", false, "Respect the root directory's .gitignore")
	v.BindPFlag("gitignore", flags.Lookup("gitignore"))
	flags.IntP("max-depth", "L", 0, "Maximum directory depth to descend (0 for no limit)")
	v.BindPFlag("max_depth", flags.Lookup("max-depth"))

	// Ordering and format
	flags.StringP("sort", "s", "name", "Sort entries by name, size or mtime")
	v.BindPFlag("sort", flags.Lookup("sort"))
	flags.BoolP("long", "l", false, "Enable long format output with size and timestamps")
	v.BindPFlag("long", flags.Lookup("long"))
	flags.Bool("ascii", false, "Draw guide lines with ASCII characters")
	v.BindPFlag("ascii", flags.Lookup("ascii"))
	flags.String("color", colorAuto, "Colorize output: auto, always or never")
	v.BindPFlag("color", flags.Lookup("color"))

	// Output
	flags.StringP("output", "o", "", "Write output to a file. Supports .gz compression")
	v.BindPFlag("output", flags.Lookup("output"))
	flags.String("json", "", "Write the tree as JSON to a file, or - for stdout")
	v.BindPFlag("json", flags.Lookup("json"))
	flags.Bool("pager", false, "Send output to pager (e.g. less)")
	v.BindPFlag("pager", flags.Lookup("pager"))
	flags.BoolP("clipboard", "c", false, "Copy output to clipboard")
	v.BindPFlag("clipboard", flags.Lookup("clipboard"))
	flags.String("pdf", "", "Save output as PDF")
	v.BindPFlag("pdf", flags.Lookup("pdf"))

	// Sources
	flags.Bool("interactive", false, "Pick the root directory with a fuzzy finder")
	v.BindPFlag("interactive", flags.Lookup("interactive"))
}

// initConfig configures logging and reads the config file and environment.
func initConfig() {
	configureLogrus()
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if err := readConfigFile(viper.GetViper(), cfgFile); err != nil {
		log.Warn(err)
	}
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

func configureLogrus() {
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(viper.GetViper())
	if err != nil {
		return err
	}
	colorMode, err := parseColorMode(settings.Color)
	if err != nil {
		return err
	}

	root, label, cleanup, err := resolveRoot(args, settings)
	if err != nil {
		return err
	}
	defer cleanup()
	if root == "" {
		return nil
	}

	opts, err := settings.options(root)
	if err != nil {
		return err
	}
	log.Debugf("building tree for %s (%s, sort=%s, max_depth=%d)", root, &opts.Filter, opts.SortKey, opts.MaxDepth)

	tree, err := buildTree(root, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if settings.JSON != "" {
		if err := renderJSON(&buf, tree); err != nil {
			return err
		}
		toTerminal := settings.JSON == "-" && settings.PDF == ""
		return writeJSONOutput(settings.JSON, settings.PDF, buf.Bytes(), colorEnabled(colorMode, toTerminal))
	}

	sink := chooseTextSink(settings)
	toTerminal := sink == sinkStdout || sink == sinkPager
	theme := newTheme(sink != sinkPDF && colorEnabled(colorMode, toTerminal), themeOverrides())

	if _, err := renderText(&buf, tree, textOptions{
		Label:   label,
		Long:    opts.Long,
		Charset: opts.Charset,
		Theme:   theme,
	}); err != nil {
		return err
	}
	return writeTextOutput(settings, buf.Bytes())
}

// resolveRoot turns the argument into a local directory. Git URLs are cloned
// and the returned cleanup removes the clone. An aborted interactive pick
// returns an empty root.
func resolveRoot(args []string, settings Settings) (root, label string, cleanup func(), err error) {
	cleanup = func() {}
	root = "."
	if len(args) == 1 {
		root = args[0]
	}

	switch {
	case settings.Interactive:
		root, err = pickRootInteractively(settings.All)
		if err != nil {
			return "", "", cleanup, err
		}
		if root == "" {
			fmt.Fprintln(os.Stderr, "Interactive selection aborted.")
		}
		return root, root, cleanup, nil
	case isGitURL(root):
		dir, err := cloneGitRepo(root)
		if err != nil {
			return "", "", cleanup, err
		}
		cleanup = func() {
			if err := os.RemoveAll(dir); err != nil {
				log.Warnf("could not remove temporary directory %s: %v", dir, err)
			}
		}
		return dir, root, cleanup, nil
	}
	return root, root, cleanup, nil
}

func colorEnabled(mode string, toTerminal bool) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return toTerminal && isatty.IsTerminal(os.Stdout.Fd())
}

func themeOverrides() map[StyleTag]StyleSpec {
	overrides, err := loadThemeOverrides()
	if err != nil {
		log.Warnf("ignoring theme: %v", err)
		return nil
	}
	return overrides
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
