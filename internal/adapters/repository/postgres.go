// internal/adapters/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		vehicle_type VARCHAR(16) NOT NULL DEFAULT '',
		vehicle_brand VARCHAR(64) NOT NULL DEFAULT '',
		vehicle_plate VARCHAR(32) NOT NULL DEFAULT '',
		bike_cc INTEGER NOT NULL DEFAULT 0,
		capacity_tons FLOAT NOT NULL DEFAULT 0,
		daily_target INTEGER NOT NULL DEFAULT 5 CHECK (daily_target >= 0),
		role VARCHAR(32) NOT NULL DEFAULT 'Rider',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		order_id VARCHAR(255) NOT NULL DEFAULT '',
		customer_name VARCHAR(255) NOT NULL,
		total_amount FLOAT NOT NULL CHECK (total_amount >= 0),
		date DATE NOT NULL,
		scan_time TIMESTAMPTZ NOT NULL,
		status VARCHAR(16) NOT NULL,
		delivery_time TIMESTAMPTZ,
		seq BIGSERIAL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS deliveries_user_order ON deliveries (user_id, order_id) WHERE order_id <> ''`,
	`CREATE INDEX IF NOT EXISTS deliveries_user_date ON deliveries (user_id, date DESC, scan_time DESC)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		user_id VARCHAR(36) NOT NULL,
		label VARCHAR(255) NOT NULL,
		unlocked_at TIMESTAMPTZ NOT NULL,
		seq BIGSERIAL,
		PRIMARY KEY (user_id, label)
	)`,
	`CREATE TABLE IF NOT EXISTS streaks (
		user_id VARCHAR(36) PRIMARY KEY,
		current INTEGER NOT NULL DEFAULT 0,
		longest INTEGER NOT NULL DEFAULT 0,
		last_active DATE
	)`,
}

// Migrate creates the tables when they do not exist yet.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, q := range schema {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation understands errors from both the lib/pq and pgx drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- users ---

const userColumns = `id, username, password, name, phone, email, vehicle_type, vehicle_brand, vehicle_plate, bike_cc, capacity_tons, daily_target, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var vehicle string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Phone, &u.Email, &vehicle,
		&u.VehicleBrand, &u.VehiclePlate, &u.BikeCC, &u.CapacityTons, &u.DailyTarget, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.VehicleType = domain.VehicleType(vehicle)
	return u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Phone, u.Email, string(u.VehicleType),
		u.VehicleBrand, u.VehiclePlate, u.BikeCC, u.CapacityTons, u.DailyTarget, u.Role, u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("username %s: %w", u.Username, domain.ErrConflict)
	}
	return err
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, err
}

func (r *PostgresRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("username %s: %w", username, domain.ErrNotFound)
	}
	return u, err
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET username = $2, password = $3, name = $4, phone = $5, email = $6,
		vehicle_type = $7, vehicle_brand = $8, vehicle_plate = $9, bike_cc = $10, capacity_tons = $11, daily_target = $12, role = $13
		WHERE id = $1`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Phone, u.Email, string(u.VehicleType),
		u.VehicleBrand, u.VehiclePlate, u.BikeCC, u.CapacityTons, u.DailyTarget, u.Role)
	if isUniqueViolation(err) {
		return fmt.Errorf("username %s: %w", u.Username, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

// --- deliveries ---

const deliveryColumns = `id, user_id, order_id, customer_name, total_amount, date, scan_time, status, delivery_time`

func scanDelivery(row interface{ Scan(...any) error }) (*domain.Delivery, error) {
	d := &domain.Delivery{}
	var status string
	var deliveredAt sql.NullTime
	if err := row.Scan(&d.ID, &d.UserID, &d.OrderID, &d.CustomerName, &d.TotalAmount, &d.Date, &d.ScanTime, &status, &deliveredAt); err != nil {
		return nil, err
	}
	d.Date = domain.Day(d.Date)
	d.Status = domain.DeliveryStatus(status)
	if deliveredAt.Valid {
		t := deliveredAt.Time
		d.DeliveryTime = &t
	}
	return d, nil
}

func (r *PostgresRepository) CreateDelivery(ctx context.Context, d *domain.Delivery) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO deliveries (`+deliveryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.UserID, d.OrderID, d.CustomerName, d.TotalAmount, domain.Day(d.Date), d.ScanTime, string(d.Status), d.DeliveryTime)
	if isUniqueViolation(err) {
		return fmt.Errorf("delivery %s: %w", d.ID, domain.ErrConflict)
	}
	return err
}

func (r *PostgresRepository) FindDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	return d, err
}

func (r *PostgresRepository) FindDeliveryByOrderID(ctx context.Context, userID, orderID string) (*domain.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE user_id = $1 AND order_id = $2`, userID, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return d, err
}

func (r *PostgresRepository) TransitionDelivery(ctx context.Context, id string, from, to domain.DeliveryStatus, at time.Time) (*domain.Delivery, error) {
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, domain.ErrInvalidTransition)
	}
	var deliveredAt *time.Time
	if to == domain.StatusCompleted {
		deliveredAt = &at
	}
	d, err := scanDelivery(r.db.QueryRowContext(ctx, `UPDATE deliveries SET status = $3, delivery_time = COALESCE($4, delivery_time)
		WHERE id = $1 AND status = $2 RETURNING `+deliveryColumns, id, string(from), string(to), deliveredAt))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// Nothing updated: either the delivery is missing or it already left from.
	current, findErr := r.FindDelivery(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("delivery %s is %s: %w", id, current.Status, domain.ErrInvalidTransition)
}

func (r *PostgresRepository) ListDeliveries(ctx context.Context, userID string) ([]*domain.Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE user_id = $1 ORDER BY date DESC, scan_time DESC, seq DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := []*domain.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// --- achievements ---

func (r *PostgresRepository) AddAchievement(ctx context.Context, a domain.Achievement) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO achievements (user_id, label, unlocked_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, label) DO NOTHING`,
		a.UserID, a.Label, a.UnlockedAt)
	if err != nil {
		return false, err
	}
	rows, _ := res.RowsAffected()
	return rows == 1, nil
}

func (r *PostgresRepository) ListAchievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, label, unlocked_at FROM achievements WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := []domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.UserID, &a.Label, &a.UnlockedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// --- streaks ---

func (r *PostgresRepository) GetStreak(ctx context.Context, userID string) (*domain.Streak, error) {
	s := &domain.Streak{UserID: userID}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT current, longest, last_active FROM streaks WHERE user_id = $1`, userID).
		Scan(&s.Current, &s.Longest, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if last.Valid {
		day := domain.Day(last.Time)
		s.LastActive = &day
	}
	return s, nil
}

func (r *PostgresRepository) SaveStreak(ctx context.Context, s *domain.Streak) error {
	var last *time.Time
	if s.LastActive != nil {
		day := domain.Day(*s.LastActive)
		last = &day
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO streaks (user_id, current, longest, last_active) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET current = EXCLUDED.current, longest = EXCLUDED.longest, last_active = EXCLUDED.last_active`,
		s.UserID, s.Current, s.Longest, last)
	return err
}

var _ ports.RepositoryPort = (*PostgresRepository)(nil)
