package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tokenlens/internal/config"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race with the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".tokenlens/config.yaml"
	envDebug        = "TOKENLENS_DEBUG"
	envLog          = "TOKENLENS_LOG"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool

	cfg            config.Config
	configFilePath string
	configErr      error
)

var rootCmd = &cobra.Command{
	Use:   "tokenlens [FILE]",
	Short: "Inspect which tokens made a text look AI-generated",
	Long: `tokenlens shows an AI-text detection result in the terminal with the
suspicious tokens highlighted in place. Hover or tab through highlighted
tokens to see their probability, examples and suggested rewrites.

FILE is a JSON or YAML result as returned by the detection service; use - to
read JSON from stdin.`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .tokenlens/config.yaml or ~/.config/tokenlens/config.yaml)")
	flags.BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by "+envDebug+")")
	flags.Float64("threshold", config.Defaults().Highlight.Threshold,
		"minimum AI probability for a token to be highlighted")
	flags.String("policy", config.Defaults().Highlight.Policy,
		`highlight policy: "thresholded" or "proportional"`)
	flags.Bool("watch", false, "reload the result file when it changes on disk")
}

// newViper returns a viper instance whose key delimiter leaves dotted color
// tokens like "highlight.base" intact.
func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter("::"))
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("highlight::policy", d.Highlight.Policy)
	v.SetDefault("highlight::threshold", d.Highlight.Threshold)
	v.SetDefault("highlight::base_opacity", d.Highlight.BaseOpacity)
	v.SetDefault("highlight::max_opacity", d.Highlight.MaxOpacity)
	v.SetDefault("ui::wrap_width", d.UI.WrapWidth)
	v.SetDefault("ui::show_tooltip", d.UI.ShowTooltip)
	v.SetDefault("ui::markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("watch::enabled", d.Watch.Enabled)
	v.SetDefault("watch::debounce", d.Watch.Debounce)
	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::file_path", config.DefaultTracesFilePath())
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing::service_name", d.Tracing.ServiceName)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	_ = v.BindPFlag("highlight::threshold", flags.Lookup("threshold"))
	_ = v.BindPFlag("highlight::policy", flags.Lookup("policy"))
	_ = v.BindPFlag("watch::enabled", flags.Lookup("watch"))
}

func initConfig() {
	v := newViper()
	setDefaults(v)
	bindFlags(v, rootCmd)

	workDir, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	cfg, configFilePath, configErr = loadConfig(v, cfgFile, workDir, home)
}

// resolveConfigPath picks the config file. Lookup order:
//  1. explicit --config path
//  2. .tokenlens/config.yaml in workDir
//  3. ~/.config/tokenlens/config.yaml
func resolveConfigPath(explicit, workDir, home string) (path string, exists bool) {
	if explicit != "" {
		return explicit, fileExists(explicit)
	}
	if workDir != "" {
		if local := filepath.Join(workDir, localConfigPath); fileExists(local) {
			return local, true
		}
	}
	if home == "" {
		return "", false
	}
	user := filepath.Join(home, ".config", "tokenlens", "config.yaml")
	return user, fileExists(user)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadConfig reads the config file into a Config. When no file was given and
// none exists, a commented default is written to the user config directory.
func loadConfig(v *viper.Viper, explicit, workDir, home string) (config.Config, string, error) {
	path, exists := resolveConfigPath(explicit, workDir, home)

	switch {
	case !exists && explicit != "":
		return config.Config{}, "", fmt.Errorf("config file %s not found", explicit)
	case !exists && path != "":
		if err := config.WriteDefaultConfig(path); err != nil {
			// Defaults still apply; saving will retry creating the file.
			log.Warn(log.CatConfig, "could not write default config", "path", path, "error", err)
		} else {
			exists = true
		}
	}

	if exists {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	return c, path, nil
}

// prepare runs before every command: it fails on config errors, turns on
// debug logging and applies the theme.
func prepare(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if os.Getenv(envDebug) != "" || debugFlag || cfg.Debug {
		logPath := os.Getenv(envLog)
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "tokenlens")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		cobra.OnFinalize(cleanup)
		log.Info(log.CatConfig, "tokenlens starting", "command", cmd.Name(), "config", configFilePath, "version", version)
	}

	theme := styles.ThemeConfig{Preset: cfg.Theme.Preset, Colors: cfg.Theme.FlattenedColors()}
	if err := styles.ApplyTheme(theme); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}
