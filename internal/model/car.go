package model

// Car represents a vehicle registered by a user, mirroring the
// `user_cars` table. Every car belongs to exactly one user via
// UserID; there is no shared ownership. Cars are immutable once
// created, as no edit or delete workflow exists.
type Car struct {
	ID          uint64 // user_cars.id
	UserID      uint64 // user_cars.user_id (references user_info.id)
	Brand       string // user_cars.car_brand
	Model       string // user_cars.car_model
	ModelYear   int    // user_cars.model_year
	PlateNumber string // user_cars.plate_number
	Kilometers  int    // user_cars.km (odometer reading)
}
