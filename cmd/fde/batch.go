package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fde/codec"
	"github.com/hupe1980/fde/fdefile"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		configPath  string
		kind        string
		input       string
		out         string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Encode a list of point clouds into an FDE file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, logger, err := root.encoder(cmd, configPath)
			if err != nil {
				return err
			}
			t, err := kindFor(kind, enc.Config())
			if err != nil {
				return err
			}
			ct, err := fdefile.ParseCompression(compression)
			if err != nil {
				return err
			}
			c, err := root.jsonCodec()
			if err != nil {
				return err
			}

			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			clouds, err := codec.DecodePointClouds(c, data, enc.Config().Dimension)
			if err != nil {
				return err
			}

			encodings, err := enc.EncodeBatch(cmd.Context(), t, clouds)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			w, err := fdefile.NewWriter(&buf, enc.OutputDimension(), len(encodings), ct)
			if err != nil {
				return err
			}
			for _, v := range encodings {
				if err := w.Write(v); err != nil {
					return err
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			if err := writeOutput(cmd, out, buf.Bytes()); err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "fde file written",
				"path", out,
				"vectors", len(encodings),
				"dimension", enc.OutputDimension(),
				"compression", ct.String(),
				"bytes", w.BytesWritten(),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().StringVar(&kind, "kind", "document", "aggregation (auto, query, document)")
	cmd.Flags().StringVar(&input, "input", "-", "JSON array of point clouds (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "", "output FDE file (- for stdout)")
	cmd.Flags().StringVar(&compression, "compression", "zstd", "block compression (none, lz4, zstd)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	var (
		input   string
		vectors bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the header, and optionally the vectors, of an FDE file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.jsonCodec()
			if err != nil {
				return err
			}
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := fdefile.NewReader(f)
			if err != nil {
				return err
			}
			h := r.Header()

			summary := map[string]any{
				"version":     h.Version,
				"compression": h.Compression.String(),
				"dimension":   h.Dimension,
				"count":       h.Count,
			}
			if vectors {
				all, err := r.ReadAll()
				if err != nil {
					return err
				}
				summary["vectors"] = all
			}

			b, err := c.Marshal(summary)
			if err != nil {
				return err
			}
			return writeOutput(cmd, "-", append(b, '\n'))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "FDE file")
	cmd.Flags().BoolVar(&vectors, "vectors", false, "include the decoded vectors")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
