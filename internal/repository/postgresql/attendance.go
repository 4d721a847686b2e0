package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/attendance"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.organization_id, a.employee_id, a.date, a.check_in, a.check_out,
		a.status, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withEmployee bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID,
		&att.OrganizationID,
		&att.EmployeeID,
		&att.Date,
		&att.CheckIn,
		&att.CheckOut,
		&att.Status,
		&att.CreatedAt,
		&att.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &att.EmployeeName)
	}
	return att, row.Scan(dest...)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (organization_id, employee_id, date, check_in, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, employee_id, date, check_in, check_out, status, created_at, updated_at
	`

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.OrganizationID,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.Status,
	), false)
	if err != nil {
		// The unique index is the concurrency backstop for the fast-path
		// existence check in the service.
		if isUniqueViolation(err, "attendances_employee_id_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.first_name || ' ' || e.last_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.organization_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, organizationID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, organizationID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2 AND a.organization_id = $3
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, organizationID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &att, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, organizationID string, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3 AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOut, id, organizationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if scanErr := q.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM attendances WHERE id = $1 AND organization_id = $2)`,
			id, organizationID,
		).Scan(&exists); scanErr != nil {
			return scanErr
		}
		if exists {
			return attendance.ErrAlreadyCheckedOut
		}
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter, organizationID string) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, organizationID, nil)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter, organizationID string) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, organizationID, &employeeID)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, filter attendance.ListFilter, organizationID string, employeeID *string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.organization_id = $1"}
	args := []interface{}{organizationID}

	if employeeID != nil {
		args = append(args, *employeeID)
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", len(args)))
	} else if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filter.Date != nil && *filter.Date != "" {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
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
		SELECT `+attendanceColumns+`, e.first_name || ' ' || e.last_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, err
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}
