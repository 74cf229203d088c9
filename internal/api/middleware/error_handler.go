package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Check if it's a Fiber error
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Error: fiberErr.Message,
				Code:  "HTTP_ERROR",
			})
		}

		// Check if it's our AppError
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			level := slog.LevelWarn
			if appErr.StatusCode >= 500 {
				level = slog.LevelError
			}
			logger.Log(c.Context(), level, "request failed",
				slog.String("code", appErr.Code),
				slog.String("message", appErr.Message),
				slog.Any("error", appErr.Err),
				slog.String("path", c.Path()),
			)

			return c.Status(appErr.StatusCode).JSON(ErrorResponse{
				Error: appErr.Error(),
				Code:  appErr.Code,
			})
		}

		// Unknown error - log and report its message
		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  domain.ErrInternal.Code,
		})
	}
}
