package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fishhook/internal/models"
)

type ModelRepository struct {
	DB *sql.DB
}

func (r *ModelRepository) CreateModel(ctx context.Context, m models.Model) (models.Model, error) {
	query := `
		INSERT INTO model_profiles (id, name, email, password, bio, price_per_hour, earnings, is_online, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Password, m.Bio, m.PricePerHour, m.IsOnline, m.CreatedAt,
	)
	if isDuplicateEntry(err) {
		return models.Model{}, models.ErrDuplicateEmail
	}
	if err != nil {
		return models.Model{}, err
	}
	return m, nil
}

func (r *ModelRepository) GetModelByID(ctx context.Context, id string) (models.Model, error) {
	query := `
		SELECT id, name, email, bio, price_per_hour, earnings, is_online, created_at, updated_at
		FROM model_profiles WHERE id = ?
	`
	var m models.Model
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Bio, &m.PricePerHour, &m.Earnings, &m.IsOnline,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Model{}, models.ErrModelNotFound
	}
	if err != nil {
		return models.Model{}, err
	}
	return m, nil
}

func (r *ModelRepository) GetModelByEmail(ctx context.Context, email string) (models.Model, error) {
	query := `
		SELECT id, name, email, password, bio, price_per_hour, earnings, is_online, created_at, updated_at
		FROM model_profiles WHERE email = ?
	`
	var m models.Model
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&m.ID, &m.Name, &m.Email, &m.Password, &m.Bio, &m.PricePerHour, &m.Earnings, &m.IsOnline,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Model{}, models.ErrModelNotFound
	}
	if err != nil {
		return models.Model{}, err
	}
	return m, nil
}

func (r *ModelRepository) ListModels(ctx context.Context) ([]models.Model, error) {
	query := `
		SELECT id, name, bio, price_per_hour, is_online, created_at
		FROM model_profiles ORDER BY is_online DESC, name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Model
	for rows.Next() {
		var m models.Model
		if err := rows.Scan(&m.ID, &m.Name, &m.Bio, &m.PricePerHour, &m.IsOnline, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *ModelRepository) SetOnline(ctx context.Context, modelID string, online bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE model_profiles SET is_online = ?, updated_at = ? WHERE id = ?`, online, time.Now(), modelID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrModelNotFound
	}
	return nil
}
