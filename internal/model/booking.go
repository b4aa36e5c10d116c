package model

import (
	"fmt"
	"time"
)

// ServiceBooking records a service appointment for a specific car,
// mirroring the `service_bookings` table. The UserID is stored
// redundantly next to CarID; the booking workflow guarantees at
// creation time that the car belongs to that user. Bookings are
// immutable once created.
//
// Fields:
//  ID          – primary key identifier.
//  CarID       – car the service is booked for.
//  UserID      – owner of the car at booking time.
//  BookingDate – requested calendar date of the appointment.
//  BookingTime – requested time slot (free text, e.g. "10:00").
//  Location    – service location.
//  Governorate – regional administrative division of the location.
//  CreatedAt   – server-assigned UTC creation timestamp.
type ServiceBooking struct {
	ID          uint64    // service_bookings.id
	CarID       uint64    // service_bookings.car_id
	UserID      uint64    // service_bookings.user_id
	BookingDate time.Time // service_bookings.booking_date
	BookingTime string    // service_bookings.booking_time
	Location    string    // service_bookings.location
	Governorate string    // service_bookings.governorate
	CreatedAt   time.Time // service_bookings.created_at
}

// BookingView is the projection shown on the service-history page:
// booking fields joined with a human-readable car label.
type BookingView struct {
	BookingID   uint64    `json:"booking_id"`
	CarID       uint64    `json:"car_id"`
	CarName     string    `json:"car_name"`
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Location    string    `json:"location"`
	Governorate string    `json:"governorate"`
	CreatedAt   time.Time `json:"created_at"`
}

// CarLabel formats a car as "Brand Model (Year)" for booking views.
func CarLabel(c Car) string {
	return fmt.Sprintf("%s %s (%d)", c.Brand, c.Model, c.ModelYear)
}
