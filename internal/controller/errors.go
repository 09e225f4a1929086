package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
)

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, service.ErrGameNameNeeded),
		errors.Is(err, model.ErrBadColor),
		errors.Is(err, model.ErrBadPosition),
		errors.Is(err, chess.ErrInvalidMove),
		errors.Is(err, chess.ErrNoPiece):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, model.ErrColorTaken),
		errors.Is(err, model.ErrNotPlayer),
		errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Error: " + msg,
	})
}

func badRequest(c *fiber.Ctx) error {
	return errorResponse(c, service.ErrBadRequest)
}
