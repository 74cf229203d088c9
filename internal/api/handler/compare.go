package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
	"github.com/saturnino-fabrica-de-software/facematch/internal/service"
	"github.com/saturnino-fabrica-de-software/facematch/internal/similarity"
)

// Distance and Threshold are reported with this many decimals
const responseDecimals = 4

// CompareService interface for the service
type CompareService interface {
	Compare(ctx context.Context, req service.CompareRequest) (*domain.Comparison, error)
}

// CompareHandler handles face comparison requests
type CompareHandler struct {
	service CompareService
	logger  *slog.Logger
}

// NewCompareHandler creates a new CompareHandler instance
func NewCompareHandler(service CompareService, logger *slog.Logger) *CompareHandler {
	return &CompareHandler{
		service: service,
		logger:  logger,
	}
}

// CompareResponse response for compare endpoint. Key names are part of the
// public contract.
type CompareResponse struct {
	EmployeeID      string  `json:"employeeId"`
	Match           bool    `json:"Match"`
	SimilarityScore string  `json:"Similarity_Score"`
	Distance        float64 `json:"Distance"`
	Threshold       float64 `json:"Threshold"`
}

// Compare POST /compare-faces/ - compare the faces in img1 and img2
func (h *CompareHandler) Compare(c *fiber.Ctx) error {
	// 1. Extract employee_id from form, echoed back exactly as sent
	employeeID := c.FormValue("employee_id")
	if employeeID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("employee_id is required"))
	}

	// 2. Extract both uploads
	img1, err := formFile(c, "img1")
	if err != nil {
		return err
	}
	img2, err := formFile(c, "img2")
	if err != nil {
		return err
	}

	// 3. Open them, bytes are passed on untouched
	f1, err := img1.Open()
	if err != nil {
		return domain.ErrStorage.WithError(fmt.Errorf("open img1: %w", err))
	}
	defer func() {
		_ = f1.Close()
	}()

	f2, err := img2.Open()
	if err != nil {
		return domain.ErrStorage.WithError(fmt.Errorf("open img2: %w", err))
	}
	defer func() {
		_ = f2.Close()
	}()

	// 4. Call service to compare
	comparison, err := h.service.Compare(c.Context(), service.CompareRequest{
		EmployeeID: employeeID,
		Img1:       service.Upload{Filename: img1.Filename, Content: f1},
		Img2:       service.Upload{Filename: img2.Filename, Content: f2},
	})
	if err != nil {
		return err
	}

	// 5. Return response
	return c.JSON(NewCompareResponse(comparison))
}

// NewCompareResponse formats a comparison for the wire
func NewCompareResponse(comparison *domain.Comparison) CompareResponse {
	return CompareResponse{
		EmployeeID:      comparison.EmployeeID,
		Match:           comparison.Result.Verified,
		SimilarityScore: similarity.Format(comparison.Similarity),
		Distance:        similarity.Round(comparison.Result.Distance, responseDecimals),
		Threshold:       similarity.Round(comparison.Result.Threshold, responseDecimals),
	}
}

func formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("%s: %w", field, err))
	}
	return file, nil
}
