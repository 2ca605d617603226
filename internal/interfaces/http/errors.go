package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
)

// errorStatus traduce errores de dominio a (status HTTP, código).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, errInvalidQuery):
		return fiber.StatusBadRequest, "INVALID_QUERY"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return fiber.StatusBadRequest, "INVALID_GSTIN"
	case errors.Is(err, domain.ErrAmountNotPositive):
		return fiber.StatusUnprocessableEntity, "AMOUNT_NOT_POSITIVE"
	case errors.Is(err, domain.ErrPartyRequired):
		return fiber.StatusUnprocessableEntity, "PARTY_REQUIRED"
	case errors.Is(err, domain.ErrPartyKindMismatch):
		return fiber.StatusUnprocessableEntity, "PARTY_KIND_MISMATCH"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse. Los errores internos se registran y no se exponen.
func writeError(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Fields: verr.Fields})
	}
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

var (
	errInvalidBody  = errors.New("cuerpo inválido")
	errInvalidQuery = errors.New("parámetros inválidos")
)

// parseBody decodifica el JSON y corre las validaciones del DTO.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return dto.Validate(out)
}

// parseQuery decodifica y valida filtros de query string.
func parseQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return errInvalidQuery
	}
	return dto.Validate(out)
}
