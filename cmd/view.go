package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/tokenlens/internal/analysis"
	"github.com/zjrosen/tokenlens/internal/app"
	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Open a detection result in the interactive viewer",
	Long: `Open a detection result in the interactive viewer.

Examples:
  tokenlens view result.json
  tokenlens view --threshold 0.8 result.yaml
  tokenlens view --watch result.json     # reload when the file changes
  detector-client essay.txt | tokenlens view -`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracing(provider)

	deriver, err := newDeriver(provider)
	if err != nil {
		return err
	}

	result, err := loadResult(ctx, path)
	if err != nil {
		return err
	}

	zone.NewGlobal()
	defer zone.Close()

	model := app.New(app.Options{
		Config:         cfg,
		Deriver:        deriver,
		Result:         result,
		ResultPath:     path,
		ConfigPath:     configFilePath,
		DarkBackground: lipgloss.HasDarkBackground(),
	})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}
	if path == "-" {
		// stdin carried the result; read keys from the terminal instead.
		opts = append(opts, tea.WithInputTTY())
	}

	_, err = tea.NewProgram(model, opts...).Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newDeriver builds the alignment deriver for the configured policy.
func newDeriver(provider *tracing.Provider) (*highlight.Deriver, error) {
	policy, err := cfg.Highlight.ToPolicy()
	if err != nil {
		return nil, fmt.Errorf("invalid highlight settings: %w", err)
	}
	return highlight.NewDeriver(policy, highlight.WithTracer(provider.Tracer())), nil
}

// loadResult reads and validates the result at path.
func loadResult(ctx context.Context, path string) (analysis.Result, error) {
	result, err := analysis.Load(ctx, path)
	if err != nil {
		return analysis.Result{}, err
	}
	if err := result.Validate(); err != nil {
		return analysis.Result{}, fmt.Errorf("invalid result %s: %w", path, err)
	}
	return result, nil
}

func shutdownTracing(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
}
