package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dealership-inventory/internal/middleware"
	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/queue"
)

type inventoryFixture struct {
	handler         *InventoryHandler
	classifications *fakeClassifications
	vehicles        *fakeVehicles
	nav             *fakeNav
	published       *capturePublisher
}

func newInventoryFixture() *inventoryFixture {
	cls := newFakeClassifications()
	veh := newFakeVehicles()
	nav := &fakeNav{store: cls}
	pub := &capturePublisher{}
	return &inventoryFixture{
		handler:         NewInventoryHandler(cls, veh, nav, pub.publish, testLogger()),
		classifications: cls,
		vehicles:        veh,
		nav:             nav,
		published:       pub,
	}
}

func (fx *inventoryFixture) seedClassification(t *testing.T, name string) uint64 {
	t.Helper()
	cls := model.Classification{Name: name}
	require.NoError(t, fx.classifications.Create(context.Background(), &cls))
	return cls.ID
}

const vehicleBody = `{
	"classification_id": "1",
	"make": "Chevrolet",
	"model": "Camaro",
	"description": "A muscle car.",
	"price": "25000",
	"year": "2018",
	"miles": "101222",
	"color": "Yellow"
}`

func asEmployee(c echo.Context) {
	c.Set(middleware.IdentityKey, model.Identity{AccountID: 3, Email: "staff@dealership.test", Role: model.RoleEmployee})
}

func TestCreateClassificationThenList(t *testing.T) {
	fx := newInventoryFixture()
	c, rec := jsonContext(t, http.MethodPost, "/v1/classifications", `{"name":"SUV"}`)
	asEmployee(c)

	require.NoError(t, fx.handler.CreateClassification(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, fx.nav.invalidated, "a new classification must invalidate the nav cache")

	listCtx, listRec := jsonContext(t, http.MethodGet, "/v1/classifications", "")
	require.NoError(t, fx.handler.ListClassifications(listCtx))
	require.Equal(t, http.StatusOK, listRec.Code)

	var resp struct {
		Items []model.Classification `json:"items"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SUV", resp.Items[0].Name)
}

func TestCreateClassificationRejectsBadName(t *testing.T) {
	fx := newInventoryFixture()
	for _, name := range []string{"SUV Truck", "Trucks!", ""} {
		c, rec := jsonContext(t, http.MethodPost, "/v1/classifications", `{"name":"`+name+`"}`)
		asEmployee(c)

		require.NoError(t, fx.handler.CreateClassification(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "name %q must be rejected", name)
	}
	assert.Empty(t, fx.classifications.items, "rejected names must not be stored")
	assert.Zero(t, fx.nav.invalidated)
	assert.Empty(t, fx.published.events)
}

func TestCreateClassificationDuplicateConflict(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sedan")

	c, rec := jsonContext(t, http.MethodPost, "/v1/classifications", `{"name":"Sedan"}`)
	asEmployee(c)

	require.NoError(t, fx.handler.CreateClassification(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, fx.classifications.items, 1)
}

func TestCreateVehicleStoresAndPublishes(t *testing.T) {
	fx := newInventoryFixture()
	clsID := fx.seedClassification(t, "Sport")

	c, rec := jsonContext(t, http.MethodPost, "/v1/vehicles", vehicleBody)
	asEmployee(c)

	require.NoError(t, fx.handler.CreateVehicle(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, fx.vehicles.items, 1)
	var stored model.Vehicle
	for _, v := range fx.vehicles.items {
		stored = v
	}
	assert.Equal(t, clsID, stored.ClassificationID)
	assert.Equal(t, "Chevrolet", stored.Make)
	assert.Equal(t, 2018, stored.Year)
	assert.Equal(t, float64(25000), stored.Price)
	assert.Equal(t, int64(101222), stored.Miles)
	// Omitted images fall back to the placeholder art.
	assert.Equal(t, model.DefaultVehicleImage, stored.ImagePath)
	assert.Equal(t, model.DefaultVehicleThumbnail, stored.ThumbnailPath)

	require.Len(t, fx.published.events, 1)
	ev := fx.published.events[0]
	assert.Equal(t, queue.ActionVehicleAdded, ev.Action)
	assert.Equal(t, stored.ID, ev.VehicleID)
	assert.Equal(t, "staff@dealership.test", ev.ActorEmail)
	assert.NotEmpty(t, ev.OccurredAt)
}

func TestCreateVehicleUnknownClassification(t *testing.T) {
	fx := newInventoryFixture()

	c, rec := jsonContext(t, http.MethodPost, "/v1/vehicles", vehicleBody)
	asEmployee(c)

	require.NoError(t, fx.handler.CreateVehicle(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select a classification.")
	assert.Empty(t, fx.vehicles.items)
	assert.Empty(t, fx.published.events)
}

func TestCreateVehicleValidationStopsBeforeStore(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sport")

	body := `{"classification_id":"1","make":"GM","model":"X","description":"","price":"0","year":"1899","miles":"-5","color":""}`
	c, rec := jsonContext(t, http.MethodPost, "/v1/vehicles", body)
	asEmployee(c)

	require.NoError(t, fx.handler.CreateVehicle(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fx.vehicles.items)

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"make", "model", "description", "price", "year", "miles", "color"}, fields)
}

func TestUpdateVehicle(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sport")

	created, createRec := jsonContext(t, http.MethodPost, "/v1/vehicles", vehicleBody)
	asEmployee(created)
	require.NoError(t, fx.handler.CreateVehicle(created))
	require.Equal(t, http.StatusCreated, createRec.Code)

	body := `{"classification_id":"1","make":"Chevrolet","model":"Camaro SS","description":"A muscle car.","price":"27500.50","year":"2019","miles":"98000","color":"Red"}`
	c, rec := jsonContext(t, http.MethodPut, "/v1/vehicles/1", body)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asEmployee(c)

	require.NoError(t, fx.handler.UpdateVehicle(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored := fx.vehicles.items[1]
	assert.Equal(t, "Camaro SS", stored.Model)
	assert.Equal(t, 27500.50, stored.Price)
	assert.Equal(t, "Red", stored.Color)

	require.Len(t, fx.published.events, 2)
	assert.Equal(t, queue.ActionVehicleUpdated, fx.published.events[1].Action)
}

func TestUpdateVehicleNotFound(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sport")

	c, rec := jsonContext(t, http.MethodPut, "/v1/vehicles/42", vehicleBody)
	c.SetParamNames("id")
	c.SetParamValues("42")
	asEmployee(c)

	require.NoError(t, fx.handler.UpdateVehicle(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVehicle(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sport")

	created, _ := jsonContext(t, http.MethodPost, "/v1/vehicles", vehicleBody)
	asEmployee(created)
	require.NoError(t, fx.handler.CreateVehicle(created))

	c, rec := jsonContext(t, http.MethodDelete, "/v1/vehicles/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asEmployee(c)

	require.NoError(t, fx.handler.DeleteVehicle(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fx.vehicles.items)

	missing, missingRec := jsonContext(t, http.MethodDelete, "/v1/vehicles/1", "")
	missing.SetParamNames("id")
	missing.SetParamValues("1")
	require.NoError(t, fx.handler.DeleteVehicle(missing))
	assert.Equal(t, http.StatusNotFound, missingRec.Code)
}

func TestGetVehicle(t *testing.T) {
	fx := newInventoryFixture()
	fx.seedClassification(t, "Sport")

	created, _ := jsonContext(t, http.MethodPost, "/v1/vehicles", vehicleBody)
	asEmployee(created)
	require.NoError(t, fx.handler.CreateVehicle(created))

	c, rec := jsonContext(t, http.MethodGet, "/v1/vehicles/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, fx.handler.GetVehicle(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Camaro")

	bad, badRec := jsonContext(t, http.MethodGet, "/v1/vehicles/nope", "")
	bad.SetParamNames("id")
	bad.SetParamValues("nope")
	require.NoError(t, fx.handler.GetVehicle(bad))
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
}

func TestListVehiclesByClassificationEmpty(t *testing.T) {
	fx := newInventoryFixture()

	c, rec := jsonContext(t, http.MethodGet, "/v1/classifications/9/vehicles", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, fx.handler.ListVehiclesByClassification(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}
