package fde

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fde/internal/math32"
	"github.com/hupe1980/fde/internal/pool"
	"github.com/hupe1980/fde/internal/random"
	"github.com/hupe1980/fde/internal/simhash"
	"github.com/hupe1980/fde/internal/sketch"
)

// repetition holds the random state of one independent partitioning pass.
type repetition struct {
	partitioner *simhash.Partitioner
	ams         *sketch.AMS // nil for identity projection
}

// Encoder generates Fixed Dimensional Encodings for one Config.
//
// The hyperplanes and projection matrices of every repetition are derived
// from the seed when the Encoder is created. An Encoder holds no mutable
// state; it is safe for concurrent use and every call allocates its own
// partition accumulators.
type Encoder struct {
	cfg  Config
	reps []repetition
	opts options
}

// New validates cfg and creates an Encoder.
//
// The fill_empty_partitions rule is checked per call, against the aggregation
// that the call performs.
func New(cfg Config, optFns ...Option) (*Encoder, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := cfg.validateStructure(); err != nil {
		return nil, err
	}

	dim := cfg.ActiveDimension()
	reps := make([]repetition, cfg.NumRepetitions)
	for r := range reps {
		planes := random.Hyperplanes(cfg.Seed, r, cfg.NumSimHashProjections, dim)
		p, err := simhash.New(planes, cfg.NumSimHashProjections, dim)
		if err != nil {
			return nil, err
		}
		reps[r].partitioner = p

		if cfg.ProjectionType == ProjectionAMSSketch {
			matrix := random.AMSMatrix(cfg.Seed, r, cfg.ProjectionDimension, cfg.Dimension)
			ams, err := sketch.NewAMS(matrix, cfg.ProjectionDimension, cfg.Dimension)
			if err != nil {
				return nil, err
			}
			reps[r].ams = ams
		}
	}

	opts.logger = opts.logger.WithConfig(cfg)

	return &Encoder{cfg: cfg, reps: reps, opts: opts}, nil
}

// Config returns the configuration of e.
func (e *Encoder) Config() Config { return e.cfg }

// OutputDimension returns the length of every encoding produced by e.
func (e *Encoder) OutputDimension() int { return e.cfg.OutputDimension() }

// Encode encodes pointCloud with the aggregation selected by
// Config.EncodingType.
func (e *Encoder) Encode(ctx context.Context, pointCloud []float32) ([]float32, error) {
	return e.encode(ctx, pointCloud, e.cfg.EncodingType)
}

// EncodeQuery encodes pointCloud with sum aggregation, regardless of
// Config.EncodingType.
func (e *Encoder) EncodeQuery(ctx context.Context, pointCloud []float32) ([]float32, error) {
	return e.encode(ctx, pointCloud, EncodingSum)
}

// EncodeDocument encodes pointCloud with average aggregation, regardless of
// Config.EncodingType.
func (e *Encoder) EncodeDocument(ctx context.Context, pointCloud []float32) ([]float32, error) {
	return e.encode(ctx, pointCloud, EncodingAverage)
}

// EncodeBatch encodes every point cloud with the given aggregation.
// Results are returned in input order. All clouds are validated before any
// of them is encoded.
func (e *Encoder) EncodeBatch(ctx context.Context, kind EncodingType, pointClouds [][]float32) (out [][]float32, err error) {
	start := time.Now()
	defer func() {
		e.opts.metricsCollector.RecordBatch(kind, len(pointClouds), time.Since(start), err)
		e.opts.logger.LogBatch(ctx, kind, len(pointClouds), err)
	}()

	if kind != EncodingSum && kind != EncodingAverage {
		return nil, &ConfigError{Field: "encoding_type", Value: int(kind), Reason: "unknown encoding type"}
	}
	if err := e.cfg.validateAggregation(kind); err != nil {
		return nil, err
	}
	for i, pc := range pointClouds {
		if err := checkPointCloud(len(pc), e.cfg.Dimension); err != nil {
			return nil, fmt.Errorf("point cloud %d: %w", i, err)
		}
	}

	out = make([][]float32, len(pointClouds))
	err = e.parallel(ctx, len(pointClouds), func(i int) error {
		enc, err := e.generate(ctx, pointClouds[i], kind, 1)
		if err != nil {
			return err
		}
		out[i] = enc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encoder) encode(ctx context.Context, pointCloud []float32, kind EncodingType) (out []float32, err error) {
	start := time.Now()
	points := len(pointCloud) / e.cfg.Dimension
	defer func() {
		e.opts.metricsCollector.RecordEncode(kind, points, time.Since(start), err)
		e.opts.logger.LogEncode(ctx, kind, points, err)
	}()

	if err := e.cfg.validateAggregation(kind); err != nil {
		return nil, err
	}
	if err := checkPointCloud(len(pointCloud), e.cfg.Dimension); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err = e.generate(ctx, pointCloud, kind, e.opts.parallelism)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// generate runs the encoding on a validated point cloud. A cancelled context
// stops scheduling further repetitions and its error is returned in place of
// the partial encoding.
func (e *Encoder) generate(ctx context.Context, pointCloud []float32, kind EncodingType, workers int) ([]float32, error) {
	blockLen := e.cfg.blockLen()
	encoding := make([]float32, blockLen*e.cfg.NumRepetitions)

	numPoints := len(pointCloud) / e.cfg.Dimension
	if numPoints > 0 {
		err := e.parallelN(ctx, workers, len(e.reps), func(r int) error {
			e.encodeRepetition(e.reps[r], pointCloud, numPoints, kind, encoding[r*blockLen:(r+1)*blockLen])
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if e.cfg.HasFinalProjection() {
		return sketch.ApplyCountSketch(encoding, e.cfg.FinalProjectionDimension, e.cfg.Seed), nil
	}
	return encoding, nil
}

// encodeRepetition fills block, which must be zeroed, with the 2^k partition
// vectors of one repetition in ascending partition order.
func (e *Encoder) encodeRepetition(rep repetition, pointCloud []float32, numPoints int, kind EncodingType, block []float32) {
	d := e.cfg.ActiveDimension()

	projected := 0
	if rep.ams != nil {
		projected = numPoints * rep.ams.Rows()
	}
	scratch := pool.Get(projected, rep.partitioner.NumPartitions(), numPoints)
	defer pool.Put(scratch)

	// points holds the (projected) points with stride d.
	points := pointCloud
	if rep.ams != nil {
		rows, cols := rep.ams.Rows(), rep.ams.Cols()
		points = scratch.Projected
		for p := 0; p < numPoints; p++ {
			rep.ams.Project(points[p*rows:(p+1)*rows], pointCloud[p*cols:(p+1)*cols])
		}
	}

	counts := scratch.Counts
	patterns := scratch.Patterns
	for p := 0; p < numPoints; p++ {
		point := points[p*d : (p+1)*d]
		pattern := rep.partitioner.Pattern(point)
		idx := simhash.GrayDecode(pattern)
		math32.AddInPlace(block[int(idx)*d:(int(idx)+1)*d], point)
		counts[idx]++
		patterns[p] = pattern
	}

	if kind != EncodingAverage {
		return
	}

	for idx, count := range counts {
		partition := block[idx*d : (idx+1)*d]
		if count > 0 {
			math32.DivInPlace(partition, float32(count))
			continue
		}
		if !e.cfg.FillEmptyPartitions {
			continue
		}
		nearest := nearestPoint(patterns, uint32(idx))
		copy(partition, points[nearest*d:(nearest+1)*d])
	}
}

// nearestPoint returns the point whose sign pattern is closest in Hamming
// distance to partition idx. Ties go to the lowest point index.
//
// This is O(points) per empty partition, i.e. O(partitions * points) per
// repetition in the worst case.
func nearestPoint(patterns []uint32, idx uint32) int {
	best, bestDist := 0, simhash.MaxProjections+1
	for p, pattern := range patterns {
		if d := simhash.PatternDistance(pattern, idx); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func (e *Encoder) parallel(ctx context.Context, n int, fn func(i int) error) error {
	return e.parallelN(ctx, e.opts.parallelism, n, fn)
}

// parallelN runs fn(0..n-1) on at most workers goroutines and stops
// scheduling new work once ctx is done or fn fails. Both paths report
// ctx.Err() after the last unit, so a cancellation is never masked.
func (e *Encoder) parallelN(ctx context.Context, workers, n int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
