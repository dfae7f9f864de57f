package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/middleware"
	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/queue"
	"github.com/iliyamo/dealership-inventory/internal/repository"
	"github.com/iliyamo/dealership-inventory/internal/validate"
)

// InventoryHandler serves the catalog: public browse endpoints plus the
// employee-gated mutations.  Reads go through the classification cache;
// successful mutations emit an audit event to the broker.
type InventoryHandler struct {
	Classifications ClassificationStore
	Vehicles        VehicleStore
	Nav             NavCache
	Publish         EventPublisher
	Log             zerolog.Logger
}

func NewInventoryHandler(cls ClassificationStore, veh VehicleStore, nav NavCache, publish EventPublisher, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{Classifications: cls, Vehicles: veh, Nav: nav, Publish: publish, Log: log}
}

// publishEvent fires an inventory event without letting broker trouble
// touch the response; the publisher logs its own failures.
func (h *InventoryHandler) publishEvent(c echo.Context, ev queue.InventoryEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if ident, ok := middleware.IdentityFrom(c); ok {
		ev.ActorID = ident.AccountID
		ev.ActorEmail = ident.Email
	}
	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), ev)
	}
}

// ListClassifications handles GET /v1/classifications: the full list
// sorted by name.  This backs the navigation menu of every page, so it
// never fails observably — a store error degrades to an empty list.
func (h *InventoryHandler) ListClassifications(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	return c.JSON(http.StatusOK, echo.Map{"items": h.Nav.List(ctx)})
}

// ListVehiclesByClassification handles GET /v1/classifications/:id/vehicles.
// Vehicles come joined with their classification name; an unknown
// classification or an empty category both yield an empty list.
func (h *InventoryHandler) ListVehiclesByClassification(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := storeCtx(c)
	defer cancel()

	items, err := h.Vehicles.ListByClassification(ctx, id)
	if err != nil {
		// Browse pages stay usable on a degraded read.
		h.Log.Error().Err(err).Uint64("classification_id", id).Msg("vehicle list failed; serving empty list")
		items = nil
	}
	if items == nil {
		items = []model.Vehicle{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetVehicle handles GET /v1/vehicles/:id.
func (h *InventoryHandler) GetVehicle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := storeCtx(c)
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		h.Log.Error().Err(err).Uint64("vehicle_id", id).Msg("vehicle lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load vehicle"})
	}
	return c.JSON(http.StatusOK, v)
}

// CreateClassification handles POST /v1/classifications (Employee and
// above).  The name must be bare alphanumeric; uniqueness is enforced by
// the store's unique index so concurrent duplicates cannot both land.
func (h *InventoryHandler) CreateClassification(c echo.Context) error {
	var req validate.ClassificationForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.Classification(&req)
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, echo.Map{"name": req.Name})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	cls := model.Classification{Name: req.Name}
	if err := h.Classifications.Create(ctx, &cls); err != nil {
		if errors.Is(err, repository.ErrClassificationExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "classification name already exists"})
		}
		h.Log.Error().Err(err).Msg("classification insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create classification"})
	}

	h.Nav.Invalidate(ctx)
	h.publishEvent(c, queue.InventoryEvent{
		Action:           queue.ActionClassificationAdded,
		ClassificationID: cls.ID,
		Classification:   cls.Name,
	})
	return c.JSON(http.StatusCreated, cls)
}

// CreateVehicle handles POST /v1/vehicles (Employee and above).  The
// submitted classification must exist; numeric fields are coerced once,
// after validation; omitted images fall back to the placeholder art.
func (h *InventoryHandler) CreateVehicle(c echo.Context) error {
	var req validate.VehicleForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.Vehicle(&req)
	submitted := vehicleSubmitted(req)
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, submitted)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	clsID, ok := req.ClassificationIDValue()
	if ok {
		exists, err := h.Classifications.Exists(ctx, clsID)
		if err != nil {
			h.Log.Error().Err(err).Msg("classification lookup failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create vehicle"})
		}
		ok = exists
	}
	if !ok {
		return validationFailed(c, http.StatusBadRequest,
			[]validate.FieldError{{Field: "classification_id", Message: validate.MsgClassificationMissing}}, submitted)
	}

	v := req.Vehicle()
	if err := h.Vehicles.Create(ctx, &v); err != nil {
		h.Log.Error().Err(err).Msg("vehicle insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create vehicle"})
	}

	h.publishEvent(c, queue.InventoryEvent{
		Action:           queue.ActionVehicleAdded,
		ClassificationID: v.ClassificationID,
		VehicleID:        v.ID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Price:            v.Price,
	})
	return c.JSON(http.StatusCreated, v)
}

// UpdateVehicle handles PUT /v1/vehicles/:id (Employee and above) with
// the same rule set as creation.
func (h *InventoryHandler) UpdateVehicle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req validate.VehicleForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	failures := validate.Vehicle(&req)
	submitted := vehicleSubmitted(req)
	if len(failures) > 0 {
		return validationFailed(c, http.StatusBadRequest, failures, submitted)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	clsID, ok := req.ClassificationIDValue()
	if ok {
		exists, err := h.Classifications.Exists(ctx, clsID)
		if err != nil {
			h.Log.Error().Err(err).Msg("classification lookup failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update vehicle"})
		}
		ok = exists
	}
	if !ok {
		return validationFailed(c, http.StatusBadRequest,
			[]validate.FieldError{{Field: "classification_id", Message: validate.MsgClassificationMissing}}, submitted)
	}

	v := req.Vehicle()
	v.ID = id
	if err := h.Vehicles.Update(ctx, &v); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		h.Log.Error().Err(err).Uint64("vehicle_id", id).Msg("vehicle update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update vehicle"})
	}

	h.publishEvent(c, queue.InventoryEvent{
		Action:           queue.ActionVehicleUpdated,
		ClassificationID: v.ClassificationID,
		VehicleID:        v.ID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Price:            v.Price,
	})
	return c.JSON(http.StatusOK, v)
}

// DeleteVehicle handles DELETE /v1/vehicles/:id (Employee and above).
func (h *InventoryHandler) DeleteVehicle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := h.Vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		h.Log.Error().Err(err).Uint64("vehicle_id", id).Msg("vehicle delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete vehicle"})
	}

	h.publishEvent(c, queue.InventoryEvent{
		Action:    queue.ActionVehicleDeleted,
		VehicleID: id,
	})
	return c.NoContent(http.StatusNoContent)
}

// vehicleSubmitted echoes a vehicle form for sticky redisplay.
func vehicleSubmitted(req validate.VehicleForm) echo.Map {
	return echo.Map{
		"classification_id": req.ClassificationID,
		"make":              req.Make,
		"model":             req.Model,
		"description":       req.Description,
		"image_path":        req.ImagePath,
		"thumbnail_path":    req.ThumbnailPath,
		"price":             req.Price,
		"year":              req.Year,
		"miles":             req.Miles,
		"color":             req.Color,
	}
}
