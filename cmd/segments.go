package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var segmentsFormat string

var segmentsCmd = &cobra.Command{
	Use:   "segments FILE",
	Short: "Print how a result's tokens align with its text",
	Long: `Print the segmentation of a detection result without the viewer.

The text format marks highlighted tokens as [[token]]. The json format lists
every segment with its token index, probability and highlight intensity.

Examples:
  tokenlens segments result.json
  tokenlens segments --threshold 0.8 result.json
  tokenlens segments -f json result.json | jq '.[] | select(.highlighted)'`,
	Args: cobra.ExactArgs(1),
	RunE: runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)

	segmentsCmd.Flags().StringVarP(&segmentsFormat, "format", "f", formatText, `output format: "text" or "json"`)
}

func runSegments(cmd *cobra.Command, args []string) error {
	if segmentsFormat != formatText && segmentsFormat != formatJSON {
		return fmt.Errorf("unknown format %q (must be %q or %q)", segmentsFormat, formatText, formatJSON)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracing(provider)

	deriver, err := newDeriver(provider)
	if err != nil {
		return err
	}

	result, err := loadResult(ctx, args[0])
	if err != nil {
		return err
	}

	d := deriver.Derive(ctx, result.Text, result.Tokens)
	return writeSegments(cmd.OutOrStdout(), d, deriver.Policy(), segmentsFormat)
}

// segmentJSON is one entry of the json output.
type segmentJSON struct {
	Text        string   `json:"text"`
	TokenIndex  *int     `json:"token_index,omitempty"`
	AIProb      *float64 `json:"ai_prob,omitempty"`
	Highlighted bool     `json:"highlighted"`
	Intensity   float64  `json:"intensity"`
}

func writeSegments(w io.Writer, d highlight.Derivation, policy highlight.Policy, format string) error {
	if format == formatJSON {
		out := make([]segmentJSON, 0, len(d.Segments))
		for _, seg := range d.Segments {
			entry := segmentJSON{Text: seg.Text}
			if seg.IsToken {
				idx := seg.TokenIndex
				entry.TokenIndex = &idx
				if p := seg.Token.AIProbability; !math.IsNaN(p) {
					entry.AIProb = &p
				}
				entry.Highlighted = policy.Highlighted(seg.Token.AIProbability)
				entry.Intensity = policy.Intensity(seg.Token.AIProbability)
			}
			out = append(out, entry)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	var b strings.Builder
	for _, seg := range d.Segments {
		if seg.IsToken && policy.Highlighted(seg.Token.AIProbability) {
			b.WriteString("[[" + seg.Text + "]]")
			continue
		}
		b.WriteString(seg.Text)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
