package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/billing"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type usageLogRepositoryImpl struct {
	db *database.DB
}

func NewUsageLogRepository(db *database.DB) billing.UsageLogRepository {
	return &usageLogRepositoryImpl{db: db}
}

const usageLogColumns = `id, organization_id, employee_count, storage_used_mb, recorded_at`

func scanUsageLog(row pgx.Row) (billing.UsageLog, error) {
	var log billing.UsageLog
	err := row.Scan(
		&log.ID,
		&log.OrganizationID,
		&log.EmployeeCount,
		&log.StorageUsedMB,
		&log.RecordedAt,
	)
	return log, err
}

// Create implements billing.UsageLogRepository.
func (r *usageLogRepositoryImpl) Create(ctx context.Context, log billing.UsageLog) (billing.UsageLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO usage_logs (organization_id, employee_count, storage_used_mb)
		VALUES ($1, $2, $3)
		RETURNING ` + usageLogColumns

	created, err := scanUsageLog(q.QueryRow(ctx, query,
		log.OrganizationID,
		log.EmployeeCount,
		log.StorageUsedMB,
	))
	if err != nil {
		return billing.UsageLog{}, err
	}

	return created, nil
}

// ListRecent implements billing.UsageLogRepository.
func (r *usageLogRepositoryImpl) ListRecent(ctx context.Context, organizationID string, since time.Time, limit int) ([]billing.UsageLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + usageLogColumns + `
		FROM usage_logs
		WHERE organization_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, organizationID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []billing.UsageLog
	for rows.Next() {
		log, err := scanUsageLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
