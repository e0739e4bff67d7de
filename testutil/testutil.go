package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/fde/distance"
)

// ScoredDoc is a document index with its similarity score.
type ScoredDoc struct {
	ID    int
	Score float32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// FillGaussian fills dst with values from a standard normal distribution.
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// GaussianPointCloud returns numPoints standard normal points of dimension
// dim in the flat layout.
func (r *RNG) GaussianPointCloud(numPoints, dim int) []float32 {
	pc := make([]float32, numPoints*dim)
	r.FillGaussian(pc)
	return pc
}

// PointCloud returns numPoints L2-normalized points of dimension dim in the
// flat layout. Gaussian sampling makes them uniform on the unit sphere, which
// is how token embeddings are usually normalized.
func (r *RNG) PointCloud(numPoints, dim int) []float32 {
	pc := r.GaussianPointCloud(numPoints, dim)
	normalizePoints(pc, dim)
	return pc
}

// Perturb returns a copy of pc where every coordinate is moved by Gaussian
// noise with standard deviation spread and every point is re-normalized.
// Documents built this way are close to pc under Chamfer similarity.
func (r *RNG) Perturb(pc []float32, dim int, spread float32) []float32 {
	out := make([]float32, len(pc))
	r.mu.Lock()
	for i, v := range pc {
		out[i] = v + float32(r.rand.NormFloat64())*spread
	}
	r.mu.Unlock()
	normalizePoints(out, dim)
	return out
}

// Corpus generates numDocs documents with between minPoints and maxPoints
// unit points each. Half of the documents are perturbations of query with
// growing noise so that the corpus has a spread of Chamfer scores.
func (r *RNG) Corpus(query []float32, dim, numDocs, minPoints, maxPoints int) [][]float32 {
	docs := make([][]float32, numDocs)
	for i := range docs {
		if i%2 == 0 {
			spread := 0.05 + float32(i)/float32(numDocs)
			docs[i] = r.Perturb(query, dim, spread)
			continue
		}
		n := minPoints
		if maxPoints > minPoints {
			n += r.Intn(maxPoints - minPoints + 1)
		}
		docs[i] = r.PointCloud(n, dim)
	}
	return docs
}

func normalizePoints(pc []float32, dim int) {
	for p := 0; p+dim <= len(pc); p += dim {
		distance.NormalizeL2InPlace(pc[p : p+dim])
	}
}

// TopK returns the k highest scores in descending order. Equal scores keep
// their input order.
func TopK(scores []float32, k int) []ScoredDoc {
	results := make([]ScoredDoc, len(scores))
	for i, s := range scores {
		results[i] = ScoredDoc{ID: i, Score: s}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []ScoredDoc) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[int]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate[:k] {
		if _, ok := truthSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}
