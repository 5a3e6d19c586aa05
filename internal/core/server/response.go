package server

import (
	"errors"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Code classifies the error (VALIDATION_ERROR, NOT_FOUND, ...).
	Code string `json:"code"`
	// Details carries structured context such as offending SKUs or field errors.
	Details any `json:"details,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// RayID returns the request id set by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok || rayID == "" {
		return "unknown"
	}
	return rayID
}

// WriteError sends err as an ErrorResponse. Uncoded errors are treated as
// internal; internal and dependency failures are logged and answered with
// the generic message.
func WriteError(c *fiber.Ctx, err error) error {
	typed := apperror.As(err)
	if typed == nil {
		typed = apperror.Internal(err, "unexpected error")
	}

	meta := apperror.MetadataFor(typed.Code())
	rayID := RayID(c)

	resp := ErrorResponse{
		Message: apperror.GenericMessage,
		Code:    string(typed.Code()),
		RayID:   rayID,
	}

	if meta.Expose {
		if msg := typed.Message(); msg != "" {
			resp.Message = msg
		}
		resp.Details = typed.Details()
		logger.Get().Debug("Request rejected",
			zap.String("ray_id", rayID),
			zap.String("path", c.Path()),
			zap.String("code", resp.Code),
			zap.Error(err),
		)
	} else {
		logger.Get().Error("Request failed",
			zap.String("ray_id", rayID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", resp.Code),
			zap.Error(err),
		)
	}

	return c.Status(meta.HTTPStatus).JSON(resp)
}

// ErrorHandler is the Fiber fallback for errors escaping handlers, e.g.
// unknown routes or recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code := apperror.CodeValidation
		if fe.Code == fiber.StatusNotFound {
			code = apperror.CodeNotFound
		}
		return c.Status(fe.Code).JSON(ErrorResponse{
			Message: fe.Message,
			Code:    string(code),
			RayID:   RayID(c),
		})
	}
	return WriteError(c, err)
}
