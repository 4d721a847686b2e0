package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/leave"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `l.id, l.organization_id, l.employee_id, l.leave_type, l.start_date, l.end_date,
		l.total_days, l.reason, l.status, l.reviewed_by, l.reviewed_at, l.review_notes,
		l.created_at, l.updated_at`

func scanLeaveRequest(row pgx.Row, withEmployee bool) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	dest := []interface{}{
		&req.ID,
		&req.OrganizationID,
		&req.EmployeeID,
		&req.LeaveType,
		&req.StartDate,
		&req.EndDate,
		&req.TotalDays,
		&req.Reason,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.ReviewNotes,
		&req.CreatedAt,
		&req.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &req.EmployeeName)
	}
	return req, row.Scan(dest...)
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (organization_id, employee_id, leave_type, start_date, end_date, total_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, organization_id, employee_id, leave_type, start_date, end_date,
			total_days, reason, status, reviewed_by, reviewed_at, review_notes,
			created_at, updated_at
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.OrganizationID,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.TotalDays,
		req.Reason,
		req.Status,
	), false)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.first_name || ' ' || e.last_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1 AND l.organization_id = $2
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id, organizationID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

// LockEmployee implements leave.LeaveRequestRepository. The lock key is a
// stable 64-bit hash of the employee id, scoped to the current transaction.
func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, employeeID)
	return err
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive bounds on both sides; rejected requests do not block.
	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string, leaveType leave.LeaveType, since time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type = $2 AND status = 'approved' AND start_date >= $3
	`

	var total int
	err := q.QueryRow(ctx, query, employeeID, leaveType, since).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SetReview implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SetReview(ctx context.Context, id string, organizationID string, status leave.Status, reviewedBy string, reviewedAt time.Time, notes string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// status = 'pending' guard: review is a one-way transition and
	// concurrent reviewers cannot both win.
	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, review_notes = $4, updated_at = NOW()
		WHERE id = $5 AND organization_id = $6 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, reviewedBy, reviewedAt, notes, id, organizationID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter, organizationID string) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, filter, organizationID, nil)
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.ListFilter, organizationID string) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, filter, organizationID, &employeeID)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, filter leave.ListFilter, organizationID string, employeeID *string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"l.organization_id = $1"}
	args := []interface{}{organizationID}

	if employeeID != nil {
		args = append(args, *employeeID)
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", len(args)))
	} else if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", len(args)))
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		args = append(args, *filter.LeaveType)
		conditions = append(conditions, fmt.Sprintf("l.leave_type = $%d", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests l WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT `+leaveColumns+`, e.first_name || ' ' || e.last_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}
