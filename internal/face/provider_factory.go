package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/facematch/internal/config"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider/rekognition"
)

// ProviderType defines supported face verification provider types
type ProviderType string

const (
	// ProviderTypeDeepFace talks to a DeepFace API server
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeRekognition uses AWS Rekognition CompareFaces
	ProviderTypeRekognition ProviderType = "rekognition"
	// ProviderTypeMock is deterministic and needs no model, for dev and tests
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceVerifier creates a FaceVerifier based on configuration
//
// Environment variables:
//   - FACE_PROVIDER: "deepface", "rekognition" or "mock" (default: "deepface")
//   - FACE_MODEL, DEEPFACE_*: DeepFace model and API settings
//   - AWS_REGION, REKOGNITION_SIMILARITY_THRESHOLD: Rekognition settings
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via AWS SDK credential chain
func NewFaceVerifier(ctx context.Context, cfg *config.Config) (provider.FaceVerifier, error) {
	switch ProviderType(cfg.FaceProvider) {
	case ProviderTypeDeepFace, "":
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeRekognition:
		return createRekognitionProvider(ctx, cfg)

	case ProviderTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.FaceProvider, ProviderTypeDeepFace, ProviderTypeRekognition, ProviderTypeMock)
	}
}

// createRekognitionProvider creates an AWS Rekognition provider instance
func createRekognitionProvider(ctx context.Context, cfg *config.Config) (provider.FaceVerifier, error) {
	rekogConfig := rekognition.DefaultConfig()
	if cfg.AWSRegion != "" {
		rekogConfig.Region = cfg.AWSRegion
	}
	rekogConfig.SimilarityThreshold = cfg.RekognitionSimilarityThreshold

	prov, err := rekognition.NewProvider(ctx, rekogConfig)
	if err != nil {
		return nil, fmt.Errorf("create rekognition provider: %w", err)
	}

	return prov, nil
}

// createDeepFaceProvider creates a DeepFace provider instance, falling back to
// defaults for anything left empty
func createDeepFaceProvider(cfg *config.Config) provider.FaceVerifier {
	deepfaceConfig := deepface.DefaultConfig()

	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.FaceModel != "" {
		deepfaceConfig.Model = cfg.FaceModel
	}
	if cfg.DeepFaceDetector != "" {
		deepfaceConfig.Detector = cfg.DeepFaceDetector
	}
	if cfg.DeepFaceTimeout > 0 {
		deepfaceConfig.Timeout = cfg.DeepFaceTimeout
	}
	deepfaceConfig.RetryCount = cfg.DeepFaceRetryCount
	deepfaceConfig.EnforceDetection = cfg.EnforceDetection

	return deepface.NewProvider(deepfaceConfig)
}
