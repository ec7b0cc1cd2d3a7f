package repositories

import (
	"context"
	"database/sql"
	"errors"

	"fishhook/internal/models"
)

// SessionRepository stores refresh-token sessions for both users and models.
type SessionRepository struct {
	DB *sql.DB
}

// SaveSession replaces any previous session of the same account/role pair.
func (r *SessionRepository) SaveSession(ctx context.Context, s models.Session) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE account_id = ? AND role = ?`, s.AccountID, s.Role); err != nil {
		return err
	}
	query := `INSERT INTO sessions (account_id, role, refresh_token, expires_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, s.AccountID, s.Role, s.RefreshToken, s.ExpiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `SELECT account_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`

	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.AccountID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}
