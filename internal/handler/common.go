package handler // handler defines http handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/queue"
	"github.com/iliyamo/dealership-inventory/internal/validate"
)

// The handlers depend on narrow store interfaces rather than concrete
// repositories so tests can substitute in-memory fakes.  The repository
// types satisfy these directly.

// AccountStore is the credential store surface the handlers need.
type AccountStore interface {
	Create(ctx context.Context, firstName, lastName, email, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id uint64) (model.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]model.Account, error)
	UpdateProfile(ctx context.Context, id uint64, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	UpdateRoleByEmail(ctx context.Context, email string, role model.Role) error
}

// ClassificationStore is the catalog surface for classifications.
type ClassificationStore interface {
	Create(ctx context.Context, c *model.Classification) error
	Exists(ctx context.Context, id uint64) (bool, error)
}

// VehicleStore is the catalog surface for vehicles.
type VehicleStore interface {
	Create(ctx context.Context, v *model.Vehicle) error
	GetByID(ctx context.Context, id uint64) (model.Vehicle, error)
	ListByClassification(ctx context.Context, classificationID uint64) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id uint64) error
}

// NavCache is the read-through classification cache surface.
type NavCache interface {
	List(ctx context.Context) []model.Classification
	Invalidate(ctx context.Context)
}

// EventPublisher pushes an inventory event onto the broker.  Failures
// are the publisher's problem; handlers fire and forget.
type EventPublisher func(ctx context.Context, ev queue.InventoryEvent) error

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// validationFailed is the sticky-form response: the ordered failures plus
// an echo of what was submitted (passwords excluded by the callers) so
// the client can redisplay the form pre-filled.
func validationFailed(c echo.Context, status int, failures []validate.FieldError, submitted echo.Map) error {
	return c.JSON(status, echo.Map{
		"errors":    failures,
		"submitted": submitted,
	})
}
