package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/settings"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `id, organization_id, work_start_time, work_end_time, working_days_per_week,
		annual_leave_quota, sick_leave_quota, timezone, created_at, updated_at`

func scanSettings(row pgx.Row) (settings.OrganizationSettings, error) {
	var s settings.OrganizationSettings
	err := row.Scan(
		&s.ID,
		&s.OrganizationID,
		&s.WorkStartTime,
		&s.WorkEndTime,
		&s.WorkingDaysPerWeek,
		&s.AnnualLeaveQuota,
		&s.SickLeaveQuota,
		&s.Timezone,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Create(ctx context.Context, s settings.OrganizationSettings) (settings.OrganizationSettings, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT keeps lazy creation race-safe: two concurrent readers
	// both get the row, only one inserts.
	query := `
		INSERT INTO organization_settings (
			organization_id, work_start_time, work_end_time, working_days_per_week,
			annual_leave_quota, sick_leave_quota, timezone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id) DO UPDATE SET updated_at = organization_settings.updated_at
		RETURNING ` + settingsColumns

	created, err := scanSettings(q.QueryRow(ctx, query,
		s.OrganizationID,
		s.WorkStartTime,
		s.WorkEndTime,
		s.WorkingDaysPerWeek,
		s.AnnualLeaveQuota,
		s.SickLeaveQuota,
		s.Timezone,
	))
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	return created, nil
}

// GetByOrganizationID implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetByOrganizationID(ctx context.Context, organizationID string) (settings.OrganizationSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM organization_settings WHERE organization_id = $1`

	s, err := scanSettings(q.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.OrganizationSettings{}, settings.ErrSettingsNotFound
		}
		return settings.OrganizationSettings{}, err
	}

	return s, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Update(ctx context.Context, s settings.OrganizationSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organization_settings
		SET work_start_time = $1, work_end_time = $2, working_days_per_week = $3,
			annual_leave_quota = $4, sick_leave_quota = $5, timezone = $6, updated_at = NOW()
		WHERE organization_id = $7
	`

	tag, err := q.Exec(ctx, query,
		s.WorkStartTime,
		s.WorkEndTime,
		s.WorkingDaysPerWeek,
		s.AnnualLeaveQuota,
		s.SickLeaveQuota,
		s.Timezone,
		s.OrganizationID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return settings.ErrSettingsNotFound
	}

	return nil
}
