package fde

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/hupe1980/fde/internal/simhash"
)

// EncodingType selects how points that fall into the same partition are
// aggregated.
type EncodingType int

const (
	// EncodingSum sums the points of a partition. Used for queries.
	EncodingSum EncodingType = iota
	// EncodingAverage averages the points of a partition. Used for documents.
	EncodingAverage
)

func (t EncodingType) String() string {
	switch t {
	case EncodingSum:
		return "sum"
	case EncodingAverage:
		return "average"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EncodingType) MarshalText() ([]byte, error) {
	if t != EncodingSum && t != EncodingAverage {
		return nil, fmt.Errorf("unknown encoding type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Accepts "sum"/"query"/"default_sum"/"0" and "average"/"avg"/"document"/"1",
// case-insensitively.
func (t *EncodingType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "sum", "default_sum", "query", "0":
		*t = EncodingSum
	case "average", "avg", "document", "1":
		*t = EncodingAverage
	default:
		return fmt.Errorf("unknown encoding type %q", text)
	}
	return nil
}

// ProjectionType selects how points are projected before partitioning.
type ProjectionType int

const (
	// ProjectionIdentity uses the points as they are.
	ProjectionIdentity ProjectionType = iota
	// ProjectionAMSSketch reduces every point to ProjectionDimension with a
	// dense random ±1 matrix.
	ProjectionAMSSketch
)

func (t ProjectionType) String() string {
	switch t {
	case ProjectionIdentity:
		return "identity"
	case ProjectionAMSSketch:
		return "ams_sketch"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ProjectionType) MarshalText() ([]byte, error) {
	if t != ProjectionIdentity && t != ProjectionAMSSketch {
		return nil, fmt.Errorf("unknown projection type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Accepts "identity"/"default_identity"/"none"/"0" and "ams_sketch"/"ams"/"1",
// case-insensitively.
func (t *ProjectionType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "identity", "default_identity", "none", "0":
		*t = ProjectionIdentity
	case "ams_sketch", "ams", "1":
		*t = ProjectionAMSSketch
	default:
		return fmt.Errorf("unknown projection type %q", text)
	}
	return nil
}

// Config describes one FDE space. Queries and documents are only comparable
// when they are encoded with the same Config (in particular the same Seed).
type Config struct {
	// Dimension of the input embeddings.
	Dimension int `json:"dimension" yaml:"dimension"`
	// NumRepetitions is the number of independent partitionings whose blocks
	// are concatenated.
	NumRepetitions int `json:"num_repetitions" yaml:"num_repetitions"`
	// NumSimHashProjections is the number of hyperplanes per repetition, in
	// [0, 30]. Each repetition has 2^NumSimHashProjections partitions.
	NumSimHashProjections int `json:"num_simhash_projections" yaml:"num_simhash_projections"`
	// Seed of all random projections.
	Seed int32 `json:"seed" yaml:"seed"`
	// EncodingType is used by the dispatching entry points.
	EncodingType EncodingType `json:"encoding_type" yaml:"encoding_type"`
	// ProjectionDimension is the per-point dimension after AMS projection.
	ProjectionDimension int `json:"projection_dimension" yaml:"projection_dimension"`
	// ProjectionType selects the per-point projection.
	ProjectionType ProjectionType `json:"projection_type" yaml:"projection_type"`
	// FillEmptyPartitions fills empty partitions with the nearest point.
	// Only valid with average aggregation.
	FillEmptyPartitions bool `json:"fill_empty_partitions" yaml:"fill_empty_partitions"`
	// FinalProjectionDimension enables the final Count-Sketch when positive.
	FinalProjectionDimension int `json:"final_projection_dimension" yaml:"final_projection_dimension"`
}

// DefaultConfig returns a Config for the given input dimension with one
// repetition, a single partition, seed 1, sum aggregation and no projections.
func DefaultConfig(dimension int) Config {
	return Config{
		Dimension:                dimension,
		NumRepetitions:           1,
		Seed:                     1,
		EncodingType:             EncodingSum,
		ProjectionType:           ProjectionIdentity,
		FinalProjectionDimension: -1,
	}
}

// HasFinalProjection reports whether the final Count-Sketch is enabled.
func (c Config) HasFinalProjection() bool {
	return c.FinalProjectionDimension > 0
}

// ActiveDimension returns the per-point dimension after projection.
func (c Config) ActiveDimension() int {
	if c.ProjectionType == ProjectionAMSSketch {
		return c.ProjectionDimension
	}
	return c.Dimension
}

// NumPartitions returns the number of partitions per repetition.
func (c Config) NumPartitions() int {
	return 1 << c.NumSimHashProjections
}

// OutputDimension returns the length of the encodings produced with c.
// The result is only meaningful for a valid Config.
func (c Config) OutputDimension() int {
	if c.HasFinalProjection() {
		return c.FinalProjectionDimension
	}
	return c.blockLen() * c.NumRepetitions
}

func (c Config) blockLen() int {
	return c.NumPartitions() * c.ActiveDimension()
}

// Validate checks c for consistency, including the aggregation rules for
// c.EncodingType.
func (c Config) Validate() error {
	if err := c.validateStructure(); err != nil {
		return err
	}
	return c.validateAggregation(c.EncodingType)
}

func (c Config) validateStructure() error {
	if c.Dimension <= 0 {
		return &ConfigError{Field: "dimension", Value: c.Dimension, Reason: "must be positive"}
	}
	if c.NumRepetitions < 1 {
		return &ConfigError{Field: "num_repetitions", Value: c.NumRepetitions, Reason: "must be at least 1"}
	}
	if c.NumSimHashProjections < 0 || c.NumSimHashProjections > simhash.MaxProjections {
		return &ConfigError{
			Field:  "num_simhash_projections",
			Value:  c.NumSimHashProjections,
			Reason: fmt.Sprintf("must be in [0, %d]", simhash.MaxProjections),
		}
	}
	if c.EncodingType != EncodingSum && c.EncodingType != EncodingAverage {
		return &ConfigError{Field: "encoding_type", Value: int(c.EncodingType), Reason: "unknown encoding type"}
	}
	switch c.ProjectionType {
	case ProjectionIdentity:
	case ProjectionAMSSketch:
		if c.ProjectionDimension <= 0 {
			return &ConfigError{
				Field:  "projection_dimension",
				Value:  c.ProjectionDimension,
				Reason: "must be positive with ams_sketch projection",
			}
		}
	default:
		return &ConfigError{Field: "projection_type", Value: int(c.ProjectionType), Reason: "unknown projection type"}
	}
	if !c.outputFits() {
		return &ConfigError{
			Field:  "num_repetitions",
			Value:  c.NumRepetitions,
			Reason: "encoding length overflows",
		}
	}
	return nil
}

// validateAggregation checks the rules that depend on the aggregation
// actually performed by a call, which may differ from c.EncodingType.
func (c Config) validateAggregation(kind EncodingType) error {
	if c.FillEmptyPartitions && kind != EncodingAverage {
		return &ConfigError{
			Field:  "fill_empty_partitions",
			Value:  true,
			Reason: fmt.Sprintf("only supported with average aggregation, got %s", kind),
		}
	}
	return nil
}

// outputFits reports whether repetitions * 2^k * D' fits in an int.
func (c Config) outputFits() bool {
	hi, block := bits.Mul64(uint64(c.ActiveDimension()), uint64(1)<<c.NumSimHashProjections)
	if hi != 0 {
		return false
	}
	hi, total := bits.Mul64(block, uint64(c.NumRepetitions))
	return hi == 0 && total <= math.MaxInt
}

func checkPointCloud(length, dimension int) error {
	if length%dimension != 0 {
		return &InputError{Length: length, Dimension: dimension}
	}
	return nil
}
