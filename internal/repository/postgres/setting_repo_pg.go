package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type SettingRepository struct {
	db *sqlx.DB
}

func NewSettingRepo(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	const query = `SELECT key_name, key_value FROM settings ORDER BY key_name`
	var settings []domain.Setting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	const query = `SELECT key_name, key_value FROM settings WHERE key_name = $1`
	var setting domain.Setting
	if err := r.db.GetContext(ctx, &setting, query, key); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO settings (key_name, key_value)
		VALUES ($1, $2)
		ON CONFLICT (key_name) DO UPDATE SET key_value = EXCLUDED.key_value
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key_name = $1`, key)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.SettingRepository = (*SettingRepository)(nil)
