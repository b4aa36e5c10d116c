package router // package router defines how HTTP routes are registered for the application

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"                 // the Echo web framework handles routing
	echomw "github.com/labstack/echo/v4/middleware" // built-in middleware (basic auth for the admin grid)

	"github.com/farahelsenaryyy/Autofixer/internal/handler"
)

// RegisterPages registers the routes that require no authentication:
// the landing page, the informational pages and the health check.
func RegisterPages(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Home)
	e.GET("/services_intro", handler.ServicesIntro)
	e.GET("/contact", handler.Contact)
	e.GET("/accessories", handler.Accessories)
	e.GET("/road_service", handler.RoadService)
}

// RegisterAuth registers sign-up, login and logout. The credential
// POSTs carry the rate-limit middleware; logout requires a session
// because it revokes the current token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit, session echo.MiddlewareFunc) {
	e.GET("/sign_up", a.SignUpForm)
	e.POST("/sign_up", a.SignUp, limit)
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login, limit)
	e.GET("/logout", a.Logout, session)
}

// RegisterBooking registers the session-protected car and booking
// workflows. The session middleware redirects unauthenticated visitors
// to the login page.
func RegisterBooking(e *echo.Echo, cars *handler.CarHandler, bookings *handler.BookingHandler, session echo.MiddlewareFunc) {
	e.GET("/add_car", cars.AddCarForm, session)
	e.POST("/add_car", cars.AddCar, session)
	e.GET("/ev_service_booking", bookings.BookingForm, session)
	e.POST("/ev_service_booking", bookings.CreateBooking, session)
	e.GET("/car_service_history", bookings.ServiceHistory, session)
}

// RegisterAdmin mounts the unconstrained admin grid under /admin behind
// basic auth. With empty credentials the grid is not mounted at all.
func RegisterAdmin(e *echo.Echo, adm *handler.AdminHandler, user, pass string) {
	if user == "" || pass == "" {
		return
	}
	g := e.Group("/admin", echomw.BasicAuth(func(u, p string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p), []byte(pass)) == 1
		return userOK && passOK, nil
	}))
	g.GET("/users", adm.ListUsers)
	g.GET("/cars", adm.ListCars)
	g.GET("/bookings", adm.ListBookings)
	g.POST("/bookings", adm.CreateBooking)
	g.DELETE("/bookings/:id", adm.DeleteBooking)
}
