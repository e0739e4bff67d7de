package fde

import "context"

// GenerateFixedDimensionalEncoding encodes pointCloud with the aggregation
// selected by cfg.EncodingType: sum for EncodingSum (queries) and average for
// EncodingAverage (documents).
//
// pointCloud is a flat concatenation of cfg.Dimension-length points.
// Returns an error matching ErrInvalidConfiguration or ErrInvalidInput when
// the arguments are invalid; no work is done in that case.
func GenerateFixedDimensionalEncoding(pointCloud []float32, cfg Config) ([]float32, error) {
	return generate(pointCloud, cfg, cfg.EncodingType)
}

// GenerateQueryFixedDimensionalEncoding encodes pointCloud with sum
// aggregation, regardless of cfg.EncodingType.
func GenerateQueryFixedDimensionalEncoding(pointCloud []float32, cfg Config) ([]float32, error) {
	return generate(pointCloud, cfg, EncodingSum)
}

// GenerateDocumentFixedDimensionalEncoding encodes pointCloud with average
// aggregation, regardless of cfg.EncodingType.
func GenerateDocumentFixedDimensionalEncoding(pointCloud []float32, cfg Config) ([]float32, error) {
	return generate(pointCloud, cfg, EncodingAverage)
}

func generate(pointCloud []float32, cfg Config, kind EncodingType) ([]float32, error) {
	if err := cfg.validateStructure(); err != nil {
		return nil, err
	}
	if err := cfg.validateAggregation(kind); err != nil {
		return nil, err
	}
	if err := checkPointCloud(len(pointCloud), cfg.Dimension); err != nil {
		return nil, err
	}

	enc, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return enc.encode(context.Background(), pointCloud, kind)
}
