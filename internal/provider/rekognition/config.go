package rekognition

// Config holds configuration for AWS Rekognition provider
type Config struct {
	// Region is the AWS region where Rekognition service will be used (e.g., "us-east-1")
	Region string

	// SimilarityThreshold is the minimum Rekognition similarity (0-100) for
	// two faces to count as the same person
	SimilarityThreshold float64
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:              "us-east-1",
		SimilarityThreshold: 80,
	}
}

// DistanceThreshold expresses SimilarityThreshold on the 0-1 distance scale
func (c Config) DistanceThreshold() float64 {
	return 1 - c.SimilarityThreshold/100
}
