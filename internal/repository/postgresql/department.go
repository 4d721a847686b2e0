package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (organization_id, name, description, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, organization_id, name, description, manager_id, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query,
		dept.OrganizationID,
		dept.Name,
		dept.Description,
		dept.ManagerID,
	).Scan(
		&created.ID,
		&created.OrganizationID,
		&created.Name,
		&created.Description,
		&created.ManagerID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "departments_organization_id_name_key") {
			return department.Department{}, department.ErrDuplicateName
		}
		return department.Department{}, err
	}

	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.organization_id, d.name, d.description, d.manager_id,
			d.created_at, d.updated_at,
			COUNT(e.id), m.first_name || ' ' || m.last_name
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		LEFT JOIN employees m ON m.id = d.manager_id
		WHERE d.id = $1 AND d.organization_id = $2
		GROUP BY d.id, m.first_name, m.last_name
	`

	var dept department.Department
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&dept.ID,
		&dept.OrganizationID,
		&dept.Name,
		&dept.Description,
		&dept.ManagerID,
		&dept.CreatedAt,
		&dept.UpdatedAt,
		&dept.EmployeeCount,
		&dept.ManagerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}

	return dept, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, organizationID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.organization_id, d.name, d.description, d.manager_id,
			d.created_at, d.updated_at,
			COUNT(e.id), m.first_name || ' ' || m.last_name
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		LEFT JOIN employees m ON m.id = d.manager_id
		WHERE d.organization_id = $1
		GROUP BY d.id, m.first_name, m.last_name
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var dept department.Department
		err := rows.Scan(
			&dept.ID,
			&dept.OrganizationID,
			&dept.Name,
			&dept.Description,
			&dept.ManagerID,
			&dept.CreatedAt,
			&dept.UpdatedAt,
			&dept.EmployeeCount,
			&dept.ManagerName,
		)
		if err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// ExistsByName implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ExistsByName(ctx context.Context, organizationID string, name string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM departments
			WHERE organization_id = $1 AND name = $2 AND ($3 = '' OR id != $3::uuid)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, organizationID, name, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, dept department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, description = $2, manager_id = $3, updated_at = NOW()
		WHERE id = $4 AND organization_id = $5
	`

	tag, err := q.Exec(ctx, query,
		dept.Name,
		dept.Description,
		dept.ManagerID,
		dept.ID,
		dept.OrganizationID,
	)
	if err != nil {
		if isUniqueViolation(err, "departments_organization_id_name_key") {
			return department.ErrDuplicateName
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM departments WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}
