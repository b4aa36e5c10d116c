package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/model"
)

// AdminHandler is the administrative read/write grid over the three
// tables. It deliberately bypasses the booking workflow's business
// rules (no ownership checks, no zero-car gate, no date validation)
// and operates on raw rows, matching its role as a generic CRUD viewer
// for staff. It must never be folded into the workflow handlers.
type AdminHandler struct {
	DB *sql.DB
}

func NewAdminHandler(db *sql.DB) *AdminHandler { return &AdminHandler{DB: db} }

func (h *AdminHandler) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// ListUsers returns every user row. Password hashes are not exposed.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	rows, err := h.DB.QueryContext(ctx,
		"SELECT id, name, email, phone, address, gender FROM user_info ORDER BY id")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	defer rows.Close()

	type userRow struct {
		ID      uint64 `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Gender  string `json:"gender"`
	}
	out := []userRow{}
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.Gender); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "scan failed")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, out)
}

// ListCars returns every car row across all users.
func (h *AdminHandler) ListCars(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	rows, err := h.DB.QueryContext(ctx,
		"SELECT id, user_id, car_brand, car_model, model_year, plate_number, km FROM user_cars ORDER BY id")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	defer rows.Close()

	out := []echo.Map{}
	for rows.Next() {
		var car model.Car
		if err := rows.Scan(&car.ID, &car.UserID, &car.Brand, &car.Model, &car.ModelYear, &car.PlateNumber, &car.Kilometers); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "scan failed")
		}
		out = append(out, echo.Map{
			"id": car.ID, "user_id": car.UserID, "car_brand": car.Brand,
			"car_model": car.Model, "model_year": car.ModelYear,
			"plate_number": car.PlateNumber, "km": car.Kilometers,
		})
	}
	if err := rows.Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, out)
}

// ListBookings returns every booking row across all users.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	rows, err := h.DB.QueryContext(ctx,
		"SELECT id, car_id, user_id, booking_date, booking_time, location, governorate, created_at FROM service_bookings ORDER BY id")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	defer rows.Close()

	out := []echo.Map{}
	for rows.Next() {
		var b model.ServiceBooking
		if err := rows.Scan(&b.ID, &b.CarID, &b.UserID, &b.BookingDate, &b.BookingTime, &b.Location, &b.Governorate, &b.CreatedAt); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "scan failed")
		}
		out = append(out, echo.Map{
			"id": b.ID, "car_id": b.CarID, "user_id": b.UserID,
			"booking_date": b.BookingDate.Format("2006-01-02"),
			"booking_time": b.BookingTime, "location": b.Location,
			"governorate": b.Governorate,
			"created_at":  b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, out)
}

type adminBookingReq struct {
	CarID       uint64 `json:"car_id"`
	UserID      uint64 `json:"user_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Location    string `json:"location"`
	Governorate string `json:"governorate"`
}

// CreateBooking inserts a raw booking row. Unlike the workflow it does
// not verify that the car belongs to the user; only the foreign keys
// constrain the input.
func (h *AdminHandler) CreateBooking(c echo.Context) error {
	var req adminBookingReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.DB.ExecContext(ctx,
		"INSERT INTO service_bookings (car_id, user_id, booking_date, booking_time, location, governorate) VALUES (?,?,?,?,?,?)",
		req.CarID, req.UserID, req.BookingDate, req.BookingTime, req.Location, req.Governorate)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "insert failed")
	}
	id, _ := res.LastInsertId()
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// DeleteBooking removes a booking row by id. Bookings have no
// dependents, so this is the only delete the grid offers; user and car
// rows are referenced by bookings and deleting them would need a
// cascade policy the product has not asked for.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.DB.ExecContext(ctx, "DELETE FROM service_bookings WHERE id=?", id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.NoContent(http.StatusNoContent)
}
