package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

func testInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
}

func truncateTables(t *testing.T, ctx context.Context) {
	tables := []string{"invitations", "leave_requests", "attendances", "employees", "departments", "organization_settings", "identities", "organizations"}

	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestOrg(t *testing.T, ctx context.Context) string {
	var orgID string
	slug := fmt.Sprintf("repo-test-%d", time.Now().UnixNano())
	err := testDB.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Repo Test Org', $1)
		RETURNING id
	`, slug).Scan(&orgID)
	require.NoError(t, err)
	return orgID
}

func createTestIdentity(t *testing.T, ctx context.Context) string {
	var identityID string
	email := fmt.Sprintf("identity-%d@test.local", time.Now().UnixNano())
	err := testDB.QueryRow(ctx, `
		INSERT INTO identities (email, password_hash, email_verified)
		VALUES ($1, 'hash', true)
		RETURNING id
	`, email).Scan(&identityID)
	require.NoError(t, err)
	return identityID
}

func departmentFixture(orgID string, name string) department.Department {
	return department.Department{
		OrganizationID: orgID,
		Name:           name,
	}
}

func testEmployee(orgID string) employee.Employee {
	return employee.Employee{
		OrganizationID: orgID,
		EmployeeCode:   "RPT0001",
		FirstName:      "Budi",
		LastName:       "Hartono",
		Email:          fmt.Sprintf("budi-%d@test.local", time.Now().UnixNano()),
		Position:       "Engineer",
		Role:           "employee",
		Status:         employee.StatusActive,
		EmploymentType: employee.EmploymentFullTime,
		BaseSalary:     decimal.NewFromInt(9500000),
		Currency:       "IDR",
		JoinDate:       time.Now(),
	}
}
