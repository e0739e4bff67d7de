package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/fde"
	"github.com/hupe1980/fde/codec"
)

// loadConfig reads a YAML or JSON config. Fields missing from the file keep
// the values of fde.DefaultConfig.
func loadConfig(path string, c codec.Codec) (fde.Config, error) {
	if path == "" {
		return fde.Config{}, fmt.Errorf("--config is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fde.Config{}, err
	}

	cfg := fde.DefaultConfig(0)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = c.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return fde.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func readInput(cmd interface{ InOrStdin() io.Reader }, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeOutput(cmd interface{ OutOrStdout() io.Writer }, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
