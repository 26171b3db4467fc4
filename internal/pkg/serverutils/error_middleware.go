package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ai-laborlaw-be/internal/repository"
	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/workflow"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so handlers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErrs.Error()))
		}

		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, workflow.ErrWrongStage),
			errors.Is(err, workflow.ErrUnanalyzableItem),
			errors.Is(err, workflow.ErrNoAnalyzedEvidence):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, analysis.ErrInvalidInput),
			errors.Is(err, analysis.ErrInvalidFormat),
			errors.Is(err, analysis.ErrFileTooLarge):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, analysis.ErrClientRequest):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, analysis.ErrNetworkFailure),
			errors.Is(err, analysis.ErrServerFailure),
			errors.Is(err, analysis.ErrParseFailure):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
		}
	}
}
