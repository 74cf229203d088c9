package domain

// ComparisonResult is what a face verifier reports for one image pair.
type ComparisonResult struct {
	Verified  bool
	Distance  float64
	Threshold float64
	Model     string
	Detector  string
	Metric    string
}

// Comparison is the outcome of a compare request after scoring.
type Comparison struct {
	EmployeeID string
	Result     ComparisonResult
	// Similarity is the clamped percentage in [0, 100].
	Similarity float64
}
