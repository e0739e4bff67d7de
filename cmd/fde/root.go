package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fde"
	"github.com/hupe1980/fde/codec"
)

type rootOptions struct {
	logLevel    string
	logFormat   string
	parallelism int
	codec       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fde",
		Short: "Fixed Dimensional Encodings for multi-vector embeddings",
		Long: `fde maps point clouds (e.g. ColBERT token embeddings) to single vectors
whose dot products approximate Chamfer similarity.

Examples:
  fde config --config space.yaml
  fde encode --config space.yaml --kind query --input query.json
  fde batch --config space.yaml --input docs.json --out docs.fde --compression zstd
  fde similarity --config space.yaml --query q.json --document d.json
  fde inspect --input docs.fde`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pflags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	pflags.IntVar(&opts.parallelism, "parallelism", 0, "worker goroutines per call (0 = GOMAXPROCS)")
	pflags.StringVar(&opts.codec, "codec", codec.Default.Name(), "JSON codec (json, go-json)")

	cmd.AddCommand(
		newConfigCmd(opts),
		newEncodeCmd(opts),
		newBatchCmd(opts),
		newSimilarityCmd(opts),
		newInspectCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(w io.Writer) (*fde.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(o.logFormat) {
	case "text":
		return fde.NewLogger(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return fde.NewLogger(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", o.logFormat)
	}
}

func (o *rootOptions) jsonCodec() (codec.Codec, error) {
	c, ok := codec.ByName(o.codec)
	if !ok {
		return nil, fmt.Errorf("unknown --codec %q", o.codec)
	}
	return c, nil
}

// encoder loads the config at path and creates an Encoder that logs to the
// command's stderr.
func (o *rootOptions) encoder(cmd *cobra.Command, path string) (*fde.Encoder, *fde.Logger, error) {
	c, err := o.jsonCodec()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(path, c)
	if err != nil {
		return nil, nil, err
	}
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	enc, err := o.newEncoder(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return enc, logger, nil
}

func (o *rootOptions) newEncoder(cfg fde.Config, logger *fde.Logger) (*fde.Encoder, error) {
	return fde.New(cfg, fde.WithLogger(logger), fde.WithParallelism(o.parallelism))
}

// kindFor maps the --kind flag to an aggregation. "auto" follows the config.
func kindFor(kind string, cfg fde.Config) (fde.EncodingType, error) {
	if strings.EqualFold(kind, "auto") || kind == "" {
		return cfg.EncodingType, nil
	}
	var t fde.EncodingType
	if err := t.UnmarshalText([]byte(kind)); err != nil {
		return 0, fmt.Errorf("invalid --kind: %w", err)
	}
	return t, nil
}
