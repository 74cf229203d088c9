package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Port        int    `envconfig:"PORT" default:"8000"`
	Environment string `envconfig:"ENV" default:"development"`
	BodyLimitMB int    `envconfig:"BODY_LIMIT_MB" default:"32"`

	// Scratch space for uploaded images
	UploadDir         string `envconfig:"UPLOAD_DIR" default:"temp_uploads"`
	KeepFailedUploads bool   `envconfig:"KEEP_FAILED_UPLOADS" default:"false"`

	// Provider
	FaceProvider     string `envconfig:"FACE_PROVIDER" default:"deepface"`
	FaceModel        string `envconfig:"FACE_MODEL" default:"SFace"`
	EnforceDetection bool   `envconfig:"ENFORCE_DETECTION" default:"true"`

	DeepFaceURL        string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceDetector   string        `envconfig:"DEEPFACE_DETECTOR" default:"opencv"`
	DeepFaceTimeout    time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"60s"`
	DeepFaceRetryCount int           `envconfig:"DEEPFACE_RETRY_COUNT" default:"0"`

	AWSRegion                      string  `envconfig:"AWS_REGION" default:"us-east-1"`
	RekognitionSimilarityThreshold float64 `envconfig:"REKOGNITION_SIMILARITY_THRESHOLD" default:"80"`

	// Comparison limits, zero disables them
	MaxConcurrentComparisons int64         `envconfig:"MAX_CONCURRENT_COMPARISONS" default:"0"`
	CompareTimeout           time.Duration `envconfig:"COMPARE_TIMEOUT" default:"0"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.FaceProvider {
	case "deepface", "rekognition", "mock":
	default:
		return fmt.Errorf("unknown FACE_PROVIDER %q", c.FaceProvider)
	}
	if c.FaceModel == "" {
		return errors.New("FACE_MODEL must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR must not be empty")
	}
	if c.MaxConcurrentComparisons < 0 {
		return errors.New("MAX_CONCURRENT_COMPARISONS must not be negative")
	}
	// 0 would accept any pair and 100 leaves a zero distance threshold
	if c.RekognitionSimilarityThreshold <= 0 || c.RekognitionSimilarityThreshold >= 100 {
		return errors.New("REKOGNITION_SIMILARITY_THRESHOLD must be strictly between 0 and 100")
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
