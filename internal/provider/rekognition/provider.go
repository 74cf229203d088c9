package rekognition

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
	"github.com/saturnino-fabrica-de-software/facematch/internal/similarity"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100

	modelName = "rekognition"
)

// Provider implements provider.FaceVerifier using AWS Rekognition CompareFaces.
//
// Rekognition reports a similarity in [0, 100]; it is turned into a distance
// as 1 - similarity/100 so scoring works the same as for DeepFace.
type Provider struct {
	client *Client
}

// Ensure Provider implements provider.FaceVerifier interface at compile time
var _ provider.FaceVerifier = (*Provider)(nil)

// NewProvider creates a Rekognition provider using the default AWS credential chain
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}
	return &Provider{client: client}, nil
}

// NewProviderWithClient creates a provider around an existing client
func NewProviderWithClient(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return "rekognition"
}

// BuildModel has no model to load; it only checks that credentials resolve
func (p *Provider) BuildModel(ctx context.Context) error {
	return p.client.CheckCredentials(ctx)
}

// validateImage checks if image data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) == 0 {
		return ErrInvalidImage
	}
	if len(image) < minImageSize {
		return fmt.Errorf("%w: image too small (%d bytes, minimum %d)", ErrInvalidImage, len(image), minImageSize)
	}
	if len(image) > maxImageSize {
		return fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, len(image), maxImageSize)
	}
	return nil
}

func readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateImage(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Verify compares the largest face of img1 against every face in img2 and
// keeps the best match.
func (p *Provider) Verify(ctx context.Context, img1Path, img2Path string) (*domain.ComparisonResult, error) {
	source, err := readImage(img1Path)
	if err != nil {
		return nil, fmt.Errorf("verify: img1: %w", err)
	}
	target, err := readImage(img2Path)
	if err != nil {
		return nil, fmt.Errorf("verify: img2: %w", err)
	}

	input := &rekognition.CompareFacesInput{
		SourceImage: &types.Image{Bytes: source},
		TargetImage: &types.Image{Bytes: target},
		// Ask for every candidate, the decision is made against our own threshold
		SimilarityThreshold: aws.Float32(0),
		QualityFilter:       types.QualityFilterNone,
	}

	output, err := p.client.api.CompareFaces(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", ParseCompareFacesError(err))
	}

	if len(output.FaceMatches) == 0 && len(output.UnmatchedFaces) == 0 {
		return nil, fmt.Errorf("verify: img2: %w", ErrNoFaceDetected)
	}

	distance := 1.0
	if best := bestSimilarity(output.FaceMatches); best >= 0 {
		distance = 1 - best/100
	}
	threshold := p.client.config.DistanceThreshold()

	return &domain.ComparisonResult{
		Verified:  similarity.IsMatch(distance, threshold),
		Distance:  distance,
		Threshold: threshold,
		Model:     modelName,
		Metric:    "similarity",
	}, nil
}

// bestSimilarity returns the highest similarity among matches, or -1
func bestSimilarity(matches []types.CompareFacesMatch) float64 {
	best := -1.0
	for _, m := range matches {
		if m.Similarity == nil {
			continue
		}
		if s := float64(*m.Similarity); s > best {
			best = s
		}
	}
	return best
}
