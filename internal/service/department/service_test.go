package department

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/department"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

var (
	testDeptDB   *database.DB
	testDeptOnce sync.Once
)

func deptTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDeptOnce.Do(func() {
		var err error
		testDeptDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
}

func truncateDeptTables(t *testing.T, ctx context.Context) {
	tables := []string{"employees", "departments", "organizations"}

	for _, table := range tables {
		_, err := testDeptDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestDepartmentService() department.DepartmentService {
	departmentRepo := postgresql.NewDepartmentRepository(testDeptDB)
	employeeRepo := postgresql.NewEmployeeRepository(testDeptDB)

	return NewDepartmentService(testDeptDB, departmentRepo, employeeRepo)
}

func createDeptTestOrg(t *testing.T, ctx context.Context) string {
	var orgID string
	slug := fmt.Sprintf("dept-test-%d", time.Now().UnixNano())
	err := testDeptDB.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Dept Test Org', $1)
		RETURNING id
	`, slug).Scan(&orgID)
	require.NoError(t, err)
	return orgID
}

func createDeptTestEmployee(t *testing.T, ctx context.Context, orgID string, departmentID *string) string {
	var employeeID string
	email := fmt.Sprintf("employee-%d@test.local", time.Now().UnixNano())
	err := testDeptDB.QueryRow(ctx, `
		INSERT INTO employees (organization_id, employee_code, first_name, last_name, email, position, department_id)
		VALUES ($1, 'EMP0001', 'Test', 'Employee', $2, 'Staff', $3)
		RETURNING id
	`, orgID, email, departmentID).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func deptActor(orgID string, role authz.Role) authz.Actor {
	return authz.Actor{
		EmployeeID:     "00000000-0000-0000-0000-000000000001",
		OrganizationID: orgID,
		Role:           role,
		Status:         "active",
	}
}

func TestDepartmentService_Create_DuplicateNameInOrg(t *testing.T) {
	ctx := context.Background()
	deptTestInit(t)
	truncateDeptTables(t, ctx)

	orgID := createDeptTestOrg(t, ctx)
	svc := newTestDepartmentService()
	actor := deptActor(orgID, authz.RoleAdmin)

	_, err := svc.Create(ctx, actor, department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, actor, department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDuplicateName)

	// Same name in another organization is fine.
	otherOrgID := createDeptTestOrg(t, ctx)
	_, err = svc.Create(ctx, deptActor(otherOrgID, authz.RoleAdmin), department.CreateDepartmentRequest{Name: "Engineering"})
	assert.NoError(t, err)
}

func TestDepartmentService_Create_ManagerMustBelongToOrg(t *testing.T) {
	ctx := context.Background()
	deptTestInit(t)
	truncateDeptTables(t, ctx)

	orgID := createDeptTestOrg(t, ctx)
	otherOrgID := createDeptTestOrg(t, ctx)
	outsiderID := createDeptTestEmployee(t, ctx, otherOrgID, nil)
	svc := newTestDepartmentService()

	_, err := svc.Create(ctx, deptActor(orgID, authz.RoleHR), department.CreateDepartmentRequest{
		Name:      "Engineering",
		ManagerID: &outsiderID,
	})
	assert.ErrorIs(t, err, department.ErrManagerNotFound)
}

func TestDepartmentService_Delete_UnassignsEmployees(t *testing.T) {
	ctx := context.Background()
	deptTestInit(t)
	truncateDeptTables(t, ctx)

	orgID := createDeptTestOrg(t, ctx)
	svc := newTestDepartmentService()
	actor := deptActor(orgID, authz.RoleAdmin)

	dept, err := svc.Create(ctx, actor, department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	employeeID := createDeptTestEmployee(t, ctx, orgID, &dept.ID)

	require.NoError(t, svc.Delete(ctx, actor, dept.ID))

	var departmentID *string
	err = testDeptDB.QueryRow(ctx, `SELECT department_id FROM employees WHERE id = $1`, employeeID).Scan(&departmentID)
	require.NoError(t, err)
	assert.Nil(t, departmentID)

	_, err = svc.GetByID(ctx, actor, dept.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentService_Delete_CrossTenantInvisible(t *testing.T) {
	ctx := context.Background()
	deptTestInit(t)
	truncateDeptTables(t, ctx)

	orgID := createDeptTestOrg(t, ctx)
	otherOrgID := createDeptTestOrg(t, ctx)
	svc := newTestDepartmentService()

	dept, err := svc.Create(ctx, deptActor(orgID, authz.RoleAdmin), department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	err = svc.Delete(ctx, deptActor(otherOrgID, authz.RoleAdmin), dept.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentService_ManageRequiresPrivilegedRole(t *testing.T) {
	ctx := context.Background()
	deptTestInit(t)
	truncateDeptTables(t, ctx)

	orgID := createDeptTestOrg(t, ctx)
	svc := newTestDepartmentService()

	_, err := svc.Create(ctx, deptActor(orgID, authz.RoleEmployee), department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)
}
