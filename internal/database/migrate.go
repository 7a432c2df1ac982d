package database

import (
	"context"
	"database/sql"
)

// schema holds the idempotent DDL for all tables.  Bookings and seats use
// auto-increment primary keys so that "ordered sequence" in the domain maps
// to insertion order (ORDER BY id).  Seat occupancy is a plain boolean; the
// scan path enforces monotonicity with a conditional update, not a trigger.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		event_name    VARCHAR(255) NOT NULL,
		session_date  CHAR(10) NOT NULL,
		session_start CHAR(5)  NOT NULL,
		session_end   CHAR(5)  NOT NULL,
		grace_minutes INT      NOT NULL DEFAULT 0,
		status        ENUM('active','ended') NOT NULL DEFAULT 'active',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_sessions_date_status (session_date, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		session_id   BIGINT UNSIGNED NOT NULL,
		booking_code VARCHAR(64) NOT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_session_code (session_id, booking_code),
		CONSTRAINT fk_bookings_session FOREIGN KEY (session_id)
			REFERENCES sessions (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS seats (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		seat_label VARCHAR(32) NOT NULL,
		occupied   TINYINT(1) NOT NULL DEFAULT 0,
		scanned_at DATETIME NULL,
		late       TINYINT(1) NOT NULL DEFAULT 0,
		KEY idx_seats_booking (booking_id),
		CONSTRAINT fk_seats_booking FOREIGN KEY (booking_id)
			REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS staff (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_staff_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		staff_id   BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_staff FOREIGN KEY (staff_id)
			REFERENCES staff (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.  Every statement is a
// CREATE TABLE IF NOT EXISTS, so running it on every startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
