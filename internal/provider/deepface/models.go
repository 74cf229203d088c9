package deepface

// VerifyRequest for POST /verify
type VerifyRequest struct {
	Img1             string `json:"img1"`                      // base64 data URI
	Img2             string `json:"img2"`                      // base64 data URI
	ModelName        string `json:"model_name"`                // "SFace", "Facenet512", etc
	DetectorBackend  string `json:"detector_backend"`          // "opencv", "retinaface", etc
	DistanceMetric   string `json:"distance_metric,omitempty"` // "cosine", "euclidean", "euclidean_l2"
	EnforceDetection bool   `json:"enforce_detection"`
	Align            bool   `json:"align"`
}

// VerifyResponse from POST /verify
type VerifyResponse struct {
	Verified         *bool       `json:"verified"`
	Distance         *float64    `json:"distance"`
	Threshold        *float64    `json:"threshold"`
	Model            string      `json:"model"`
	DetectorBackend  string      `json:"detector_backend"`
	SimilarityMetric string      `json:"similarity_metric"`
	FacialAreas      FacialAreas `json:"facial_areas"`
	Time             float64     `json:"time"`
}

type FacialAreas struct {
	Img1 FacialArea `json:"img1"`
	Img2 FacialArea `json:"img2"`
}

type FacialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// RepresentRequest for POST /represent
type RepresentRequest struct {
	Img              string `json:"img"`
	ModelName        string `json:"model_name"`
	DetectorBackend  string `json:"detector_backend"`
	EnforceDetection bool   `json:"enforce_detection"`
}

// RepresentResponse from POST /represent
type RepresentResponse struct {
	Results []RepresentResult `json:"results"`
}

type RepresentResult struct {
	Embedding  []float64  `json:"embedding"`
	FacialArea FacialArea `json:"facial_area"`
}

// errorResponse is the body DeepFace sends with 4xx/5xx statuses
type errorResponse struct {
	Error string `json:"error"`
}
