package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

// Format is the encoding of a stored result.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// wireResult mirrors the service's response body.
type wireResult struct {
	Text            string      `json:"text" yaml:"text"`
	Score           *float64    `json:"score" yaml:"score"`
	Explanation     string      `json:"explanation" yaml:"explanation"`
	Examples        TextList    `json:"examples" yaml:"examples"`
	Recommendations TextList    `json:"recommendations" yaml:"recommendations"`
	Tokens          []wireToken `json:"tokens" yaml:"tokens"`
}

type wireToken struct {
	Token           string   `json:"token" yaml:"token"`
	AIProb          *float64 `json:"ai_prob" yaml:"ai_prob"`
	IsSpecialToken  bool     `json:"is_special_token" yaml:"is_special_token"`
	Examples        TextList `json:"examples" yaml:"examples"`
	Recommendations TextList `json:"recommendations" yaml:"recommendations"`
}

func (w wireResult) result() Result {
	tokens := make([]highlight.Token, len(w.Tokens))
	for i, t := range w.Tokens {
		tokens[i] = highlight.Token{
			Text:            t.Token,
			AIProbability:   orNaN(t.AIProb),
			IsSpecial:       t.IsSpecialToken,
			Examples:        t.Examples,
			Recommendations: t.Recommendations,
		}
	}
	return Result{
		Text:            w.Text,
		Score:           orNaN(w.Score),
		Explanation:     w.Explanation,
		Examples:        w.Examples,
		Recommendations: w.Recommendations,
		Tokens:          tokens,
	}
}

// orNaN maps a missing number to NaN, which the highlight policy treats as
// "below threshold".
func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Decode reads one result from r.
func Decode(r io.Reader, format Format) (Result, error) {
	var w wireResult
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&w); err != nil {
			return Result{}, fmt.Errorf("decoding yaml result: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&w); err != nil {
			return Result{}, fmt.Errorf("decoding json result: %w", err)
		}
	default:
		return Result{}, fmt.Errorf("unsupported format %q", format)
	}
	return w.result(), nil
}

// Load reads a result from path. A path of "-" reads JSON from stdin.
func Load(ctx context.Context, path string) (Result, error) {
	format := FormatFromPath(path)

	_, span := otel.Tracer("github.com/zjrosen/tokenlens/internal/analysis").Start(ctx, tracing.SpanLoad)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrSourcePath, path),
		attribute.String(tracing.AttrSourceFormat, string(format)),
	)

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path) //nolint:gosec // G304: user-supplied result file
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Result{}, fmt.Errorf("opening result: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	res, err := Decode(r, format)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatAnalysis, "failed to load result", err, "path", path)
		return Result{}, err
	}

	span.SetAttributes(attribute.Int(tracing.AttrTokenCount, len(res.Tokens)))
	log.Debug(log.CatAnalysis, "loaded result", "path", path, "tokens", len(res.Tokens), "chars", CharCount(res.Text))
	return res, nil
}

// UnmarshalJSON accepts a string, a list of strings, or null.
func (l *TextList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = fromString(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = items
	return nil
}

// UnmarshalYAML accepts a scalar string or a sequence of strings.
func (l *TextList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = fromString(s)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

func fromString(s string) TextList {
	if s == "" {
		return nil
	}
	return TextList{s}
}
