package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/fde"
	"github.com/hupe1980/fde/codec"
)

func newEncodeCmd(root *rootOptions) *cobra.Command {
	var (
		configPath string
		kind       string
		input      string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode one point cloud and print the FDE as a JSON array",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, _, err := root.encoder(cmd, configPath)
			if err != nil {
				return err
			}
			t, err := kindFor(kind, enc.Config())
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
			pc, err := codec.DecodePointCloud(c, data, enc.Config().Dimension)
			if err != nil {
				return err
			}

			var encoding []float32
			switch t {
			case fde.EncodingSum:
				encoding, err = enc.EncodeQuery(cmd.Context(), pc)
			default:
				encoding, err = enc.EncodeDocument(cmd.Context(), pc)
			}
			if err != nil {
				return err
			}

			b, err := c.Marshal(encoding)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, append(b, '\n'))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().StringVar(&kind, "kind", "auto", "aggregation (auto, query, document)")
	cmd.Flags().StringVar(&input, "input", "-", "point cloud JSON file (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "-", "output file (- for stdout)")
	return cmd
}
