package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
	"github.com/saturnino-fabrica-de-software/facematch/internal/similarity"
)

// warmupImageSize is the side of the blank image used to load the model
const warmupImageSize = 64

// Provider implements provider.FaceVerifier using DeepFace API
type Provider struct {
	client *Client
	config Config
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
		config: config,
	}
}

func (p *Provider) Name() string {
	return "deepface"
}

// Verify sends both images to DeepFace and maps its verdict
func (p *Provider) Verify(ctx context.Context, img1Path, img2Path string) (*domain.ComparisonResult, error) {
	img1, err := readDataURI(img1Path)
	if err != nil {
		return nil, fmt.Errorf("verify: img1: %w", err)
	}
	img2, err := readDataURI(img2Path)
	if err != nil {
		return nil, fmt.Errorf("verify: img2: %w", err)
	}

	resp, err := p.client.Verify(ctx, img1, img2)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	if resp.Distance == nil || resp.Threshold == nil {
		return nil, fmt.Errorf("verify: %w: missing distance or threshold", ErrInvalidResponse)
	}
	if *resp.Threshold <= 0 {
		return nil, fmt.Errorf("verify: %w: non-positive threshold %v", ErrInvalidResponse, *resp.Threshold)
	}

	verified := similarity.IsMatch(*resp.Distance, *resp.Threshold)
	if resp.Verified != nil {
		verified = *resp.Verified
	}

	model := resp.Model
	if model == "" {
		model = p.config.Model
	}

	return &domain.ComparisonResult{
		Verified:  verified,
		Distance:  *resp.Distance,
		Threshold: *resp.Threshold,
		Model:     model,
		Detector:  resp.DetectorBackend,
		Metric:    resp.SimilarityMetric,
	}, nil
}

// BuildModel forces DeepFace to load and cache the configured model by
// representing a blank image with detection disabled.
func (p *Provider) BuildModel(ctx context.Context) error {
	img, err := blankImageDataURI(warmupImageSize)
	if err != nil {
		return fmt.Errorf("build model %s: %w", p.config.Model, err)
	}

	if _, err := p.client.Represent(ctx, img, false); err != nil {
		return fmt.Errorf("build model %s: %w", p.config.Model, err)
	}

	return nil
}

func readDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	return encodeDataURI(data), nil
}

func encodeDataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func blankImageDataURI(size int) (string, error) {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = color.Gray{Y: 128}.Y
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return encodeDataURI(buf.Bytes()), nil
}

// Ensure Provider implements provider.FaceVerifier
var _ provider.FaceVerifier = (*Provider)(nil)
