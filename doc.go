// Package fde computes Fixed Dimensional Encodings (FDEs) of multi-vector
// embeddings.
//
// A point cloud (the token embeddings of one query or one document) is
// mapped to a single fixed-length vector such that the dot product of a
// query FDE and a document FDE approximates the Chamfer similarity of the
// two point clouds. FDEs can therefore be stored and searched by any
// single-vector index.
//
// # Quick Start
//
//	cfg := fde.DefaultConfig(128)
//	cfg.NumRepetitions = 20
//	cfg.NumSimHashProjections = 5
//	cfg.Seed = 42
//
//	q, _ := fde.GenerateQueryFixedDimensionalEncoding(queryTokens, cfg)
//	d, _ := fde.GenerateDocumentFixedDimensionalEncoding(docTokens, cfg)
//	score := distance.Dot(q, d) // ≈ Chamfer(query, doc)
//
// Point clouds are flat slices: point i occupies
// pointCloud[i*Dimension : (i+1)*Dimension].
//
// # Encoder
//
// For repeated encoding in the same space, create an Encoder once. It
// derives the random hyperplanes up front, is safe for concurrent use and
// supports logging, metrics and bounded parallelism:
//
//	enc, _ := fde.New(cfg,
//	    fde.WithLogger(fde.NewTextLogger(slog.LevelInfo)),
//	    fde.WithParallelism(4),
//	)
//	docs, _ := enc.EncodeBatch(ctx, fde.EncodingAverage, clouds)
//
// # Construction
//
// For each of NumRepetitions repetitions:
//
//   - every point is optionally reduced by a dense ±1 AMS projection,
//   - NumSimHashProjections Gaussian hyperplanes split space into
//     2^NumSimHashProjections Gray-coded partitions,
//   - points are summed (queries) or averaged (documents) per partition,
//   - empty document partitions may be filled with the nearest point.
//
// The repetition blocks are concatenated and optionally compacted with a
// Count-Sketch to FinalProjectionDimension values.
//
// # Determinism
//
// All random numbers are derived by hashing (seed, repetition, purpose,
// row, col), so the same Config yields bit-identical encodings in any
// process. Queries and documents must use the same Seed to be comparable.
// Parallelism never changes the output.
package fde
