package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/middleware"
	"github.com/iliyamo/dealership-inventory/internal/repository"
	"github.com/iliyamo/dealership-inventory/internal/utils"
	"github.com/iliyamo/dealership-inventory/internal/validate"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts AccountStore
	Log      zerolog.Logger
}

func NewAuthHandler(cfg config.Config, accounts AccountStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: accounts, Log: log}
}

type sessionResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Register creates a new Client account.  Validation runs before any
// store call; a rejected submission causes zero mutation and echoes the
// input (minus the password) for redisplay.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validate.RegisterForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.Register(&req)
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

	// The email must not already be registered.  The unique index catches
	// a concurrent insert of the same address; this check exists to give
	// the form its field-level message.
	taken, err := h.Accounts.EmailExists(ctx, req.Email)
	if err != nil {
		h.Log.Error().Err(err).Msg("email lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	if taken {
		return validationFailed(c, http.StatusConflict,
			[]validate.FieldError{{Field: "email", Message: validate.MsgEmailExists}}, submitted)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("password hashing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	id, err := h.Accounts.Create(ctx, req.FirstName, req.LastName, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return validationFailed(c, http.StatusConflict,
				[]validate.FieldError{{Field: "email", Message: validate.MsgEmailExists}}, submitted)
		}
		h.Log.Error().Err(err).Msg("account insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	acct, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		h.Log.Error().Err(err).Msg("account readback failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"account": acct})
}

// Login verifies credentials and issues a session token.  An unknown
// email and a wrong password produce the same response so the endpoint
// cannot be used to enumerate registered addresses.
func (h *AuthHandler) Login(c echo.Context) error {
	var req validate.LoginForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.Login(&req)
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, echo.Map{"email": req.Email})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	acct, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		h.Log.Error().Err(err).Msg("account lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(acct.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, acct, h.Cfg.SessionTTLMin)
	if err != nil {
		h.Log.Error().Err(err).Msg("session token signing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	// Browser clients carry the token in an httpOnly cookie; API clients
	// use the bearer header.  Both are accepted by the session middleware.
	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   h.Cfg.Env != "dev",
	})

	return c.JSON(http.StatusOK, echo.Map{
		"account": acct,
		"session": sessionResp{Token: tok.Token, Expires: tok.Exp},
	})
}

// Logout clears the session cookie.  Tokens are stateless bearer
// credentials with no server-side revocation list, so an already-issued
// token stays valid until its expiry; this endpoint only tells the
// client to stop presenting it.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's decoded identity.
func (h *AuthHandler) Me(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return c.JSON(http.StatusOK, ident)
}
