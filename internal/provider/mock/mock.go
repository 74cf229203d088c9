package mock

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"os"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
)

const (
	embeddingDimension = 128

	// DefaultThreshold mirrors the SFace cosine threshold
	DefaultThreshold = 0.593

	// MinFaceBytes is the smallest file the mock accepts as containing a face
	MinFaceBytes = 1000
)

// Provider implements provider.FaceVerifier for tests and local development.
// Identical files always match with distance 0; different files get a
// distance from hash derived embeddings.
type Provider struct {
	threshold float64
}

func New() *Provider {
	return &Provider{threshold: DefaultThreshold}
}

func (p *Provider) Name() string {
	return "mock"
}

func (p *Provider) BuildModel(ctx context.Context) error {
	return ctx.Err()
}

func (p *Provider) Verify(ctx context.Context, img1Path, img2Path string) (*domain.ComparisonResult, error) {
	emb1, err := embed(img1Path)
	if err != nil {
		return nil, fmt.Errorf("img1: %w", err)
	}
	emb2, err := embed(img2Path)
	if err != nil {
		return nil, fmt.Errorf("img2: %w", err)
	}

	distance := math.Max(0, 1-cosineSimilarity(emb1, emb2))

	return &domain.ComparisonResult{
		Verified:  distance <= p.threshold,
		Distance:  distance,
		Threshold: p.threshold,
		Model:     "mock",
		Detector:  "mock",
		Metric:    "cosine",
	}, nil
}

func embed(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < MinFaceBytes {
		return nil, fmt.Errorf("%w in %d byte image", provider.ErrNoFaceDetected, len(data))
	}
	return generateEmbedding(data), nil
}

// generateEmbedding gera embedding determinístico baseado no hash da imagem
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		//nolint:gosec // idx is always < hashLen due to modulo operation
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	return embedding
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ provider.FaceVerifier = (*Provider)(nil)
