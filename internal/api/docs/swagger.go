package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// CompareFacesResponse represents the response for a face comparison
type CompareFacesResponse struct {
	EmployeeID      string  `json:"employeeId" example:"E-1042"`
	Match           bool    `json:"Match" example:"true"`
	SimilarityScore string  `json:"Similarity_Score" example:"30.47%"`
	Distance        float64 `json:"Distance" example:"0.4123"`
	Threshold       float64 `json:"Threshold" example:"0.593"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error" example:"Face could not be detected in one of the images"`
	Code  string `json:"code" example:"NO_FACE_DETECTED"`
}

// HealthResponse represents the liveness and readiness responses
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Version  string `json:"version,omitempty" example:"0.1.0"`
	Provider string `json:"provider,omitempty" example:"deepface"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger(host string) *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Face Match API",
		Version:     "v0.1.0",
		Description: "Compares the faces in two uploaded images and reports whether they belong to the same person",
		Host:        host,
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /compare-faces/ - Compare two faces
		endpoint.New(
			endpoint.POST,
			"/compare-faces/",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Compare the faces in two images"),
			endpoint.WithDescription("Multipart form with files img1 and img2 and the text field employee_id. "+
				"Similarity_Score is (1 - Distance/Threshold) * 100 clamped to 0..100. "+
				"Every comparison failure answers 500 with the error message."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CompareFacesResponse{}, "200", "Comparison completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Error: "Request validation failed: employee_id is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Error: "Face could not be detected in one of the images"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "PROVIDER_ERROR", Error: "Face verification provider failed"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "STORAGE_ERROR", Error: "Temporary image storage failed"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "TIMEOUT", Error: "Face comparison timed out"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health - Liveness
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is up"),
			}),
		),

		// GET /ready - Readiness
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Answers 503 until the face model has been loaded"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ready"}, "200", "Model loaded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "warming_up"}, "503", "Model still loading"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
