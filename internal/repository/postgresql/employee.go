package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.organization_id, e.auth_id, e.employee_code, e.first_name, e.last_name,
		e.email, e.phone_number, e.position, e.department_id, e.role, e.status, e.employment_type,
		e.base_salary, e.currency, e.join_date, e.created_at, e.updated_at`

const employeeReturning = `id, organization_id, auth_id, employee_code, first_name, last_name,
		email, phone_number, position, department_id, role, status, employment_type,
		base_salary, currency, join_date, created_at, updated_at`

func scanEmployee(row pgx.Row, withDepartment bool) (employee.Employee, error) {
	var emp employee.Employee
	dest := []interface{}{
		&emp.ID,
		&emp.OrganizationID,
		&emp.AuthID,
		&emp.EmployeeCode,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.PhoneNumber,
		&emp.Position,
		&emp.DepartmentID,
		&emp.Role,
		&emp.Status,
		&emp.EmploymentType,
		&emp.BaseSalary,
		&emp.Currency,
		&emp.JoinDate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	}
	if withDepartment {
		dest = append(dest, &emp.DepartmentName)
	}
	return emp, row.Scan(dest...)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			organization_id, auth_id, employee_code, first_name, last_name, email,
			phone_number, position, department_id, role, status, employment_type,
			base_salary, currency, join_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + employeeReturning

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.OrganizationID,
		emp.AuthID,
		emp.EmployeeCode,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.PhoneNumber,
		emp.Position,
		emp.DepartmentID,
		emp.Role,
		emp.Status,
		emp.EmploymentType,
		emp.BaseSalary,
		emp.Currency,
		emp.JoinDate,
	), false)
	if err != nil {
		if isUniqueViolation(err, "employees_organization_id_email_key") {
			return employee.Employee{}, employee.ErrDuplicateEmail
		}
		return employee.Employee{}, err
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `, d.name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1 AND e.organization_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, organizationID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByAuthID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByAuthID(ctx context.Context, authID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `, d.name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.auth_id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, authID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetUnlinkedByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetUnlinkedByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `, d.name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.email = $1 AND e.auth_id IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, organizationID string, email string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE organization_id = $1 AND email = $2 AND ($3 = '' OR id != $3::uuid)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, organizationID, email, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter, organizationID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"e.organization_id = $1"}
	args := []interface{}{organizationID}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)",
			len(args), len(args), len(args), len(args)))
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e WHERE ` + where
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
		SELECT `+employeeColumns+`, d.name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE %s
		ORDER BY e.employee_code
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows, true)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE organization_id = $1`, organizationID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountActive(ctx context.Context, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE organization_id = $1 AND status = 'active'`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, position = $5,
			department_id = $6, role = $7, status = $8, employment_type = $9,
			base_salary = $10, currency = $11, join_date = $12, updated_at = NOW()
		WHERE id = $13 AND organization_id = $14
	`

	tag, err := q.Exec(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.PhoneNumber,
		emp.Position,
		emp.DepartmentID,
		emp.Role,
		emp.Status,
		emp.EmploymentType,
		emp.BaseSalary,
		emp.Currency,
		emp.JoinDate,
		emp.ID,
		emp.OrganizationID,
	)
	if err != nil {
		if isUniqueViolation(err, "employees_organization_id_email_key") {
			return employee.ErrDuplicateEmail
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM employees WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// LinkAuthID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) LinkAuthID(ctx context.Context, id string, authID string) error {
	q := GetQuerier(ctx, r.db)

	// auth_id IS NULL guard: a second link attempt updates zero rows
	// instead of silently reassigning the identity.
	query := `
		UPDATE employees
		SET auth_id = $1, updated_at = NOW()
		WHERE id = $2 AND auth_id IS NULL
	`

	tag, err := q.Exec(ctx, query, authID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if scanErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists); scanErr != nil {
			return scanErr
		}
		if exists {
			return employee.ErrAlreadyLinked
		}
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ClearDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ClearDepartment(ctx context.Context, departmentID string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE employees SET department_id = NULL, updated_at = NOW() WHERE department_id = $1 AND organization_id = $2`,
		departmentID, organizationID,
	)
	return err
}
