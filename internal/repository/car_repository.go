package repository

import (
	"context"
	"database/sql"

	"github.com/farahelsenaryyy/Autofixer/internal/model"
)

// CarRepo provides inserts and owner-scoped queries over the user_cars
// table. Cars have no update or delete path; once registered they only
// ever appear in listings and booking lookups.
type CarRepo struct{ db *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// Create inserts a car owned by car.UserID and returns the new ID. The
// insert runs in its own transaction so a failed commit leaves nothing
// behind before the caller re-renders the add-car form.
func (r *CarRepo) Create(ctx context.Context, car model.Car) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_cars (user_id, car_brand, car_model, model_year, plate_number, km) VALUES (?,?,?,?,?,?)",
		car.UserID, car.Brand, car.Model, car.ModelYear, car.PlateNumber, car.Kilometers)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByOwner returns all cars owned by the given user in insertion
// order. An empty slice is a valid result and drives the booking
// workflow's "add a car first" gate.
func (r *CarRepo) ListByOwner(ctx context.Context, owner uint64) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, car_brand, car_model, model_year, plate_number, km FROM user_cars WHERE user_id=? ORDER BY id",
		owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []model.Car{}
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.ID, &c.UserID, &c.Brand, &c.Model, &c.ModelYear, &c.PlateNumber, &c.Kilometers); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetByID fetches a car by id. Returns ErrCarNotFound when no row
// exists so handlers can surface a not-found condition directly.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	var c model.Car
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, car_brand, car_model, model_year, plate_number, km FROM user_cars WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.UserID, &c.Brand, &c.Model, &c.ModelYear, &c.PlateNumber, &c.Kilometers)
	if err == sql.ErrNoRows {
		return model.Car{}, ErrCarNotFound
	}
	return c, err
}
