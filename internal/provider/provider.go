package provider

import (
	"context"
	"errors"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
)

// FaceVerifier compares the faces found in two image files.
type FaceVerifier interface {
	// Verify runs 1:1 verification over two images stored on local disk.
	// Implementations enforce detection: an image without a face is an
	// error wrapping ErrNoFaceDetected, never a silent mismatch.
	Verify(ctx context.Context, img1Path, img2Path string) (*domain.ComparisonResult, error)

	// BuildModel loads and caches the model so the first Verify does not
	// pay for it. Safe to call more than once.
	BuildModel(ctx context.Context) error

	// Name identifies the provider in logs and health output
	Name() string
}

var (
	ErrNoFaceDetected      = errors.New("face could not be detected")
	ErrProviderUnavailable = errors.New("face provider unavailable")
	ErrInvalidResponse     = errors.New("invalid response from face provider")
)
