package repository

import (
	"context"
	"database/sql"

	"github.com/farahelsenaryyy/Autofixer/internal/model"
)

// BookingRepo persists service bookings. Bookings are append-only:
// there is no update, cancel or delete. created_at is assigned by the
// database in UTC and queried back after the insert so callers see the
// authoritative timestamp.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and populates the generated ID and the
// server-assigned CreatedAt on the provided record. The caller is
// responsible for the car-ownership check; this layer only enforces
// the foreign keys.
func (r *BookingRepo) Create(ctx context.Context, b *model.ServiceBooking) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO service_bookings (car_id, user_id, booking_date, booking_time, location, governorate) VALUES (?,?,?,?,?,?)",
		b.CarID, b.UserID, b.BookingDate.Format("2006-01-02"), b.BookingTime, b.Location, b.Governorate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to pick up the DB-assigned creation timestamp.
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM service_bookings WHERE id=?", b.ID).Scan(&b.CreatedAt)
}

// ListByCar returns all bookings for one car ordered by requested date
// descending. The service-history page iterates cars in registration
// order and concatenates these per-car lists, preserving the grouped
// ordering of the listing.
func (r *BookingRepo) ListByCar(ctx context.Context, carID uint64) ([]model.ServiceBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, car_id, user_id, booking_date, booking_time, location, governorate, created_at FROM service_bookings WHERE car_id=? ORDER BY booking_date DESC",
		carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.ServiceBooking{}
	for rows.Next() {
		var b model.ServiceBooking
		if err := rows.Scan(&b.ID, &b.CarID, &b.UserID, &b.BookingDate, &b.BookingTime, &b.Location, &b.Governorate, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
