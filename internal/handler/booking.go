package handler

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/flash"
	"github.com/farahelsenaryyy/Autofixer/internal/middleware"
	"github.com/farahelsenaryyy/Autofixer/internal/model"
	"github.com/farahelsenaryyy/Autofixer/internal/queue"
	"github.com/farahelsenaryyy/Autofixer/internal/repository"
	queue_publisher "github.com/farahelsenaryyy/Autofixer/internal/service"
)

// BookingHandler implements the service-booking workflow and the
// service-history listing.
type BookingHandler struct {
	Cars     CarStore
	Bookings BookingStore
	// PublishEvents disables the RabbitMQ publish when false, which the
	// tests use to avoid dialing a broker.
	PublishEvents bool
}

func NewBookingHandler(cars CarStore, bookings BookingStore) *BookingHandler {
	return &BookingHandler{Cars: cars, Bookings: bookings, PublishEvents: true}
}

const dateLayout = "2006-01-02"

// BookingForm renders the booking form listing the user's cars. A user
// without cars is sent to the add-car form first.
func (h *BookingHandler) BookingForm(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.ListByOwner(ctx, uid)
	if err != nil {
		c.Logger().Errorf("booking form: list cars failed: %v", err)
		flash.Add(c, flash.LevelError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/services_intro")
	}
	if len(cars) == 0 {
		flash.Add(c, flash.LevelWarning, "Please add a car before booking a service.")
		return c.Redirect(http.StatusFound, "/add_car")
	}

	var opts strings.Builder
	for _, car := range cars {
		fmt.Fprintf(&opts, `<option value="%d">%s</option>`, car.ID, template.HTMLEscapeString(model.CarLabel(car)))
	}
	return renderPage(c, "Book a service", `<h1>Book an EV service</h1>
<form method="post" action="/ev_service_booking">
<select name="car_id">`+opts.String()+`</select>
<input name="booking_date" type="date" placeholder="Date">
<input name="booking_time" placeholder="Time">
<input name="location" placeholder="Location">
<input name="governorate" placeholder="Governorate">
<button type="submit">Book</button>
</form>`)
}

// CreateBooking records a service booking for one of the user's cars.
// Checks run in order: the zero-car gate, car existence (404), car
// ownership (danger notice + redirect to history), and the date format.
// Multiple bookings for the same car and date are allowed. On success a
// booking.created event is published best-effort.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.ListByOwner(ctx, uid)
	if err != nil {
		c.Logger().Errorf("create booking: list cars failed: %v", err)
		flash.Add(c, flash.LevelError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/ev_service_booking")
	}
	if len(cars) == 0 {
		flash.Add(c, flash.LevelWarning, "Please add a car before booking a service.")
		return c.Redirect(http.StatusFound, "/add_car")
	}

	carID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("car_id")), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "car not found")
	}
	car, err := h.Cars.GetByID(ctx, carID)
	if err != nil {
		if err == repository.ErrCarNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "car not found")
		}
		c.Logger().Errorf("create booking: load car failed: %v", err)
		flash.Add(c, flash.LevelError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/ev_service_booking")
	}
	if car.UserID != uid {
		flash.Add(c, flash.LevelDanger, "You do not have permission to book service for this car.")
		return c.Redirect(http.StatusFound, "/car_service_history")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(c.FormValue("booking_date")))
	if err != nil {
		flash.Add(c, flash.LevelError, "Please pick a valid booking date.")
		return c.Redirect(http.StatusFound, "/ev_service_booking")
	}

	booking := model.ServiceBooking{
		CarID:       car.ID,
		UserID:      uid,
		BookingDate: date,
		BookingTime: strings.TrimSpace(c.FormValue("booking_time")),
		Location:    strings.TrimSpace(c.FormValue("location")),
		Governorate: strings.TrimSpace(c.FormValue("governorate")),
	}
	if err := h.Bookings.Create(ctx, &booking); err != nil {
		c.Logger().Errorf("create booking: insert failed: %v", err)
		flash.Add(c, flash.LevelError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/ev_service_booking")
	}

	if h.PublishEvents {
		ev := queue.BookingCreatedEvent{
			BookingID:   booking.ID,
			UserID:      booking.UserID,
			CarID:       booking.CarID,
			CarLabel:    model.CarLabel(car),
			BookingDate: booking.BookingDate.Format(dateLayout),
			BookingTime: booking.BookingTime,
			Location:    booking.Location,
			Governorate: booking.Governorate,
			CreatedAt:   booking.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = queue_publisher.PublishBookingCreated(pubCtx, ev) // best effort, already logged
		}()
	}

	flash.Add(c, flash.LevelSuccess, "Service booking successful! We look forward to serving you.")
	return c.Redirect(http.StatusFound, "/car_service_history")
}

// ServiceHistory lists the user's cars with all their bookings. The
// listing iterates cars in registration order and shows each car's
// bookings ordered by requested date descending; the grouped order is
// deliberate and matches the booking form's car order.
func (h *BookingHandler) ServiceHistory(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.historyForUser(ctx, uid)
	if err != nil {
		c.Logger().Errorf("service history: %v", err)
		flash.Add(c, flash.LevelError, "Something went wrong. Please try again.")
		return c.Redirect(http.StatusFound, "/services_intro")
	}

	var rows strings.Builder
	for _, v := range views {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			template.HTMLEscapeString(v.CarName),
			v.BookingDate.Format(dateLayout),
			template.HTMLEscapeString(v.BookingTime),
			template.HTMLEscapeString(v.Location),
			template.HTMLEscapeString(v.Governorate))
	}
	return renderPage(c, "Service history", `<h1>Service history</h1>
<table><tr><th>Car</th><th>Date</th><th>Time</th><th>Location</th><th>Governorate</th></tr>`+
		rows.String()+`</table>
<p><a href="/ev_service_booking">Book a service</a> | <a href="/add_car">Add a car</a></p>`)
}

// historyForUser builds the booking views for every car the user owns.
func (h *BookingHandler) historyForUser(ctx context.Context, uid uint64) ([]model.BookingView, error) {
	cars, err := h.Cars.ListByOwner(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	views := []model.BookingView{}
	for _, car := range cars {
		bookings, err := h.Bookings.ListByCar(ctx, car.ID)
		if err != nil {
			return nil, fmt.Errorf("list bookings for car %d: %w", car.ID, err)
		}
		for _, b := range bookings {
			views = append(views, model.BookingView{
				BookingID:   b.ID,
				CarID:       car.ID,
				CarName:     model.CarLabel(car),
				BookingDate: b.BookingDate,
				BookingTime: b.BookingTime,
				Location:    b.Location,
				Governorate: b.Governorate,
				CreatedAt:   b.CreatedAt,
			})
		}
	}
	return views, nil
}
