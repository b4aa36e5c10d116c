// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a service booking is successfully
// recorded. It contains enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	CarID       uint64 `json:"car_id"`
	CarLabel    string `json:"car_label"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Location    string `json:"location"`
	Governorate string `json:"governorate"`
	CreatedAt   string `json:"created_at"`
}
