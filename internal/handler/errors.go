package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/FrankoSolomun/movie-watchlist/internal/service"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors to HTTP statuses: validation → 400,
// not-found-or-unauthorized → 404, conflict → 409, anything else → 500 with
// the given fallback message.
func respondError(c fiber.Ctx, err error, fallback string) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: vErr.Msg})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: service.ErrNotFound.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: service.ErrConflict.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: fallback})
	}
}
