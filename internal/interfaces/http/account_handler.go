package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
)

// AccountHandler plan de cuentas y cuentas bancarias.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// CreateHead godoc
// @Summary      Crear cuenta del plan de cuentas
// @Tags         account-heads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateAccountHeadRequest  true  "code, name, group, parent_id"
// @Success      201   {object}  dto.AccountHeadResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/account-heads [post]
func (h *AccountHandler) CreateHead(c *fiber.Ctx) error {
	var in dto.CreateAccountHeadRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateHead(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListHeads godoc
// @Summary      Listar plan de cuentas
// @Tags         account-heads
// @Produce      json
// @Security     BearerAuth
// @Param        group  query  string  false  "asset | liability | equity | income | expense"
// @Success      200    {array}  dto.AccountHeadResponse
// @Router       /api/account-heads [get]
func (h *AccountHandler) ListHeads(c *fiber.Ctx) error {
	out, err := h.uc.ListHeads(c.Context(), GetCompanyID(c), c.Query("group"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetHead godoc
// @Summary      Obtener cuenta
// @Tags         account-heads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountHeadResponse
// @Router       /api/account-heads/{id} [get]
func (h *AccountHandler) GetHead(c *fiber.Ctx) error {
	out, err := h.uc.GetHead(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateHead godoc
// @Summary      Actualizar cuenta
// @Tags         account-heads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountHeadRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AccountHeadResponse
// @Router       /api/account-heads/{id} [put]
func (h *AccountHandler) UpdateHead(c *fiber.Ctx) error {
	var in dto.UpdateAccountHeadRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateHead(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteHead godoc
// @Summary      Eliminar cuenta sin gastos ni subcuentas
// @Tags         account-heads
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/account-heads/{id} [delete]
func (h *AccountHandler) DeleteHead(c *fiber.Ctx) error {
	if err := h.uc.DeleteHead(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBankAccount godoc
// @Summary      Crear cuenta bancaria
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBankAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.BankAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bank-accounts [post]
func (h *AccountHandler) CreateBankAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateBankAccount(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBankAccounts godoc
// @Summary      Listar cuentas bancarias (número enmascarado)
// @Tags         bank-accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.BankAccountResponse
// @Router       /api/bank-accounts [get]
func (h *AccountHandler) ListBankAccounts(c *fiber.Ctx) error {
	out, err := h.uc.ListBankAccounts(c.Context(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBankAccount godoc
// @Summary      Obtener cuenta bancaria
// @Tags         bank-accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.BankAccountResponse
// @Router       /api/bank-accounts/{id} [get]
func (h *AccountHandler) GetBankAccount(c *fiber.Ctx) error {
	out, err := h.uc.GetBankAccount(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateBankAccount godoc
// @Summary      Actualizar cuenta bancaria
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la cuenta"
// @Param        body  body  dto.UpdateBankAccountRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.BankAccountResponse
// @Router       /api/bank-accounts/{id} [put]
func (h *AccountHandler) UpdateBankAccount(c *fiber.Ctx) error {
	var in dto.UpdateBankAccountRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateBankAccount(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBankAccount godoc
// @Summary      Eliminar cuenta bancaria sin gastos
// @Tags         bank-accounts
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bank-accounts/{id} [delete]
func (h *AccountHandler) DeleteBankAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteBankAccount(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
