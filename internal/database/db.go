package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the three application tables when they do not exist
// yet. Statements are idempotent so startup can always run them.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_info (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(120) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			address VARCHAR(200) NOT NULL,
			gender VARCHAR(10) NOT NULL,
			password_hash VARCHAR(120) NOT NULL,
			UNIQUE KEY uq_user_info_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS user_cars (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			car_brand VARCHAR(100) NOT NULL,
			car_model VARCHAR(100) NOT NULL,
			model_year INT NOT NULL,
			plate_number VARCHAR(20) NOT NULL,
			km INT NOT NULL,
			CONSTRAINT fk_user_cars_user FOREIGN KEY (user_id) REFERENCES user_info(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS service_bookings (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			car_id BIGINT UNSIGNED NOT NULL,
			user_id BIGINT UNSIGNED NOT NULL,
			booking_date DATE NOT NULL,
			booking_time VARCHAR(20) NOT NULL,
			location VARCHAR(100) NOT NULL,
			governorate VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_service_bookings_car FOREIGN KEY (car_id) REFERENCES user_cars(id),
			CONSTRAINT fk_service_bookings_user FOREIGN KEY (user_id) REFERENCES user_info(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
