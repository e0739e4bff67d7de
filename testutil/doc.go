// Package testutil provides testing utilities for FDE.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds, ranking
// documents by score and verifying retrieval recall.
//
// # Random Point Clouds
//
//	rng := testutil.NewRNG(seed)
//	pc := rng.PointCloud(32, 128)        // 32 unit points, flat layout
//	near := rng.Perturb(pc, 128, 0.1)    // same points plus Gaussian noise
//
// # Ranking and Recall
//
//	exact := testutil.TopK(chamferScores, 10)
//	approx := testutil.TopK(fdeScores, 10)
//	recall := testutil.ComputeRecall(exact, approx)
package testutil
