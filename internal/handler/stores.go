package handler

import (
	"context"
	"time"

	"github.com/farahelsenaryyy/Autofixer/internal/model"
)

// The handlers depend on small store interfaces instead of the concrete
// repositories so the workflow logic can be exercised in tests with
// in-memory fakes. The repository package satisfies all of them.

// UserStore persists and queries user accounts.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// CarStore persists and queries registered cars.
type CarStore interface {
	Create(ctx context.Context, car model.Car) (uint64, error)
	ListByOwner(ctx context.Context, owner uint64) ([]model.Car, error)
	GetByID(ctx context.Context, id uint64) (model.Car, error)
}

// BookingStore persists and queries service bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.ServiceBooking) error
	ListByCar(ctx context.Context, carID uint64) ([]model.ServiceBooking, error)
}

// SessionRevoker invalidates a session token id until its natural
// expiry. Implemented by the Redis session store.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
}
