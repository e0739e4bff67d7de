package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/fde/chamfer"
	"github.com/hupe1980/fde/codec"
	"github.com/hupe1980/fde/distance"
)

type similarityResult struct {
	FDE             float32 `json:"fde"`
	Chamfer         float32 `json:"chamfer"`
	OutputDimension int     `json:"output_dimension"`
}

func newSimilarityCmd(root *rootOptions) *cobra.Command {
	var (
		configPath string
		queryPath  string
		docPath    string
	)

	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Compare the FDE score of a query and a document with exact Chamfer similarity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, logger, err := root.encoder(cmd, configPath)
			if err != nil {
				return err
			}
			c, err := root.jsonCodec()
			if err != nil {
				return err
			}
			dim := enc.Config().Dimension

			qData, err := readInput(cmd, queryPath)
			if err != nil {
				return err
			}
			query, err := codec.DecodePointCloud(c, qData, dim)
			if err != nil {
				return err
			}
			dData, err := readInput(cmd, docPath)
			if err != nil {
				return err
			}
			doc, err := codec.DecodePointCloud(c, dData, dim)
			if err != nil {
				return err
			}

			// Filling applies to documents only; queries share the seed
			// and therefore the partitioning.
			queryEnc := enc
			if cfg := enc.Config(); cfg.FillEmptyPartitions {
				cfg.FillEmptyPartitions = false
				if queryEnc, err = root.newEncoder(cfg, logger); err != nil {
					return err
				}
			}

			q, err := queryEnc.EncodeQuery(cmd.Context(), query)
			if err != nil {
				return err
			}
			d, err := enc.EncodeDocument(cmd.Context(), doc)
			if err != nil {
				return err
			}
			exact, err := chamfer.Similarity(query, doc, dim)
			if err != nil {
				return err
			}

			b, err := c.Marshal(similarityResult{
				FDE:             distance.Dot(q, d),
				Chamfer:         exact,
				OutputDimension: enc.OutputDimension(),
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, "-", append(b, '\n'))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().StringVar(&queryPath, "query", "", "query point cloud JSON file")
	cmd.Flags().StringVar(&docPath, "document", "", "document point cloud JSON file")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}
