package deepface

import (
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
)

var (
	ErrDeepFaceUnavailable = fmt.Errorf("deepface: %w", provider.ErrProviderUnavailable)
	ErrInvalidResponse     = fmt.Errorf("deepface: %w", provider.ErrInvalidResponse)
	ErrNoFaceInImage       = fmt.Errorf("deepface: %w", provider.ErrNoFaceDetected)
	ErrEmptyImage          = errors.New("deepface: empty image file")
)
