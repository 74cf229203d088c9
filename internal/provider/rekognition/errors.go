package rekognition

import (
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
)

var (
	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = fmt.Errorf("invalid or missing AWS credentials: %w", provider.ErrProviderUnavailable)

	// ErrNoFaceDetected indicates that no face was found in the provided image
	ErrNoFaceDetected = fmt.Errorf("rekognition: %w", provider.ErrNoFaceDetected)

	// ErrInvalidImage indicates the image was rejected before or by Rekognition
	ErrInvalidImage = errors.New("invalid image for rekognition")

	// ErrThrottled indicates Rekognition refused the call because of request rate
	ErrThrottled = fmt.Errorf("rekognition throttled: %w", provider.ErrProviderUnavailable)
)
