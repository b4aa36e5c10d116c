package handler

import "github.com/labstack/echo/v4"

// Static informational pages. These carry no business logic; they only
// render a shell (with pending flash notices) so the workflow redirects
// resolve to something visible.

func Home(c echo.Context) error {
	return renderPage(c, "Home", `<h1>Autofixer</h1><p>EV service center.</p>
<p><a href="/sign_up">Sign up</a> | <a href="/login">Log in</a> | <a href="/services_intro">Services</a></p>`)
}

func ServicesIntro(c echo.Context) error {
	return renderPage(c, "Services", `<h1>Our services</h1>
<p><a href="/ev_service_booking">Book a service</a> | <a href="/car_service_history">Service history</a> | <a href="/add_car">Add a car</a></p>`)
}

func Contact(c echo.Context) error {
	return renderPage(c, "Contact", `<h1>Contact us</h1>`)
}

func Accessories(c echo.Context) error {
	return renderPage(c, "Accessories", `<h1>Accessories</h1>`)
}

func RoadService(c echo.Context) error {
	return renderPage(c, "Road service", `<h1>Road service</h1>`)
}
