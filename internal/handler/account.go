package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/middleware"
	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/repository"
	"github.com/iliyamo/dealership-inventory/internal/utils"
	"github.com/iliyamo/dealership-inventory/internal/validate"
)

// AccountHandler serves account self-service plus the admin-only account
// management operations.
type AccountHandler struct {
	Cfg      config.Config
	Accounts AccountStore
	Log      zerolog.Logger
}

func NewAccountHandler(cfg config.Config, accounts AccountStore, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{Cfg: cfg, Accounts: accounts, Log: log}
}

// UpdateProfile handles PUT /v1/account: first/last name and email of the
// calling account.  The email-uniqueness check only runs when the email
// actually changed.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req validate.UpdateAccountForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.UpdateAccount(&req)
	submitted := echo.Map{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
	}
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, submitted)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if req.Email != ident.Email {
		taken, err := h.Accounts.EmailExists(ctx, req.Email)
		if err != nil {
			h.Log.Error().Err(err).Msg("email lookup failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "account update failed"})
		}
		if taken {
			return validationFailed(c, http.StatusConflict,
				[]validate.FieldError{{Field: "email", Message: validate.MsgEmailExists}}, submitted)
		}
	}

	if err := h.Accounts.UpdateProfile(ctx, ident.AccountID, req.FirstName, req.LastName, req.Email); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return validationFailed(c, http.StatusConflict,
				[]validate.FieldError{{Field: "email", Message: validate.MsgEmailExists}}, submitted)
		}
		h.Log.Error().Err(err).Msg("account update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "account update failed"})
	}

	acct, err := h.Accounts.GetByID(ctx, ident.AccountID)
	if err != nil {
		h.Log.Error().Err(err).Msg("account readback failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "account update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"account": acct})
}

// ChangePassword handles PUT /v1/account/password.  The new password must
// satisfy the full strength rule; the stored hash is replaced and the
// plaintext is never logged or persisted.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req validate.UpdatePasswordForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if failures := validate.UpdatePassword(&req); len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, echo.Map{})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("password hashing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := h.Accounts.UpdatePassword(ctx, ident.AccountID, hash); err != nil {
		h.Log.Error().Err(err).Msg("password update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// ListAccounts handles GET /v1/accounts (Admin only): every account
// without password material, for the account management view.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	accounts, err := h.Accounts.ListAll(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("account listing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list accounts"})
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": accounts})
}

// UpdateAccountType handles PUT /v1/accounts/role (Admin only): changes
// the role of the account with the submitted email.
func (h *AccountHandler) UpdateAccountType(c echo.Context) error {
	var req validate.UpdateRoleForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.UpdateRole(&req)
	submitted := echo.Map{"email": req.Email, "role": req.Role}
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, submitted)
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		// Unreachable past validation; kept so the store never sees a
		// role outside the enum.
		return validationFailed(c, http.StatusBadRequest,
			[]validate.FieldError{{Field: "role", Message: "Account type must be 'Client', 'Employee', or 'Admin'."}}, submitted)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := h.Accounts.UpdateRoleByEmail(ctx, req.Email, role); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		h.Log.Error().Err(err).Msg("role update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "role update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "account type updated", "email": req.Email, "role": role})
}
