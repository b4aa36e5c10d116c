package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/flash"
	"github.com/farahelsenaryyy/Autofixer/internal/middleware"
	"github.com/farahelsenaryyy/Autofixer/internal/model"
)

// CarHandler implements the add-car workflow.
type CarHandler struct {
	Cars CarStore
}

func NewCarHandler(cars CarStore) *CarHandler { return &CarHandler{Cars: cars} }

// AddCarForm renders the add-car form.
func (h *CarHandler) AddCarForm(c echo.Context) error {
	return renderPage(c, "Add a car", `<h1>Add a car</h1>
<form method="post" action="/add_car">
<input name="car_brand" placeholder="Brand">
<input name="car_model" placeholder="Model">
<input name="model_year" placeholder="Model year">
<input name="plate_number" placeholder="Plate number">
<input name="km" placeholder="Odometer (km)">
<button type="submit">Add car</button>
</form>`)
}

// AddCar registers a car for the authenticated user. Every field is
// required and year/odometer must be integers; validation failures
// re-render the form with a notice instead of redirecting. A storage
// failure rolls the pending insert back (inside the repository) and
// re-renders the form.
func (h *CarHandler) AddCar(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	brand := strings.TrimSpace(c.FormValue("car_brand"))
	carModel := strings.TrimSpace(c.FormValue("car_model"))
	yearStr := strings.TrimSpace(c.FormValue("model_year"))
	plate := strings.TrimSpace(c.FormValue("plate_number"))
	kmStr := strings.TrimSpace(c.FormValue("km"))

	if brand == "" || carModel == "" || yearStr == "" || plate == "" || kmStr == "" {
		flash.Add(c, flash.LevelError, "All fields are required")
		return h.AddCarForm(c)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		flash.Add(c, flash.LevelError, "Model year must be a number")
		return h.AddCarForm(c)
	}
	km, err := strconv.Atoi(kmStr)
	if err != nil {
		flash.Add(c, flash.LevelError, "Odometer reading must be a number")
		return h.AddCarForm(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err = h.Cars.Create(ctx, model.Car{
		UserID:      uid,
		Brand:       brand,
		Model:       carModel,
		ModelYear:   year,
		PlateNumber: plate,
		Kilometers:  km,
	})
	if err != nil {
		c.Logger().Errorf("add car: insert failed: %v", err)
		flash.Add(c, flash.LevelError, "An error occurred while adding the car.")
		return h.AddCarForm(c)
	}

	flash.Add(c, flash.LevelSuccess, "Car added successfully!")
	return c.Redirect(http.StatusFound, "/car_service_history")
}
