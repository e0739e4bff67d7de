package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/fde"
)

type effectiveConfig struct {
	fde.Config      `yaml:",inline"`
	OutputDimension int `json:"output_dimension" yaml:"output_dimension"`
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate a config and print it with its output dimension",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.jsonCodec()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(path, c)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out := effectiveConfig{Config: cfg, OutputDimension: cfg.OutputDimension()}

			var data []byte
			if format == "json" {
				data, err = c.Marshal(out)
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(out)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, "-", data)
		},
	}

	cmd.Flags().StringVar(&path, "config", "", "config file (YAML, or JSON with .json extension)")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")
	return cmd
}
