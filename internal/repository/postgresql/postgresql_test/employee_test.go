package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

func TestEmployeeRepository_Create_Success(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, testEmployee(orgID))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, orgID, created.OrganizationID)
	assert.Nil(t, created.AuthID)
	assert.True(t, created.BaseSalary.Equal(testEmployee(orgID).BaseSalary))
}

func TestEmployeeRepository_Create_DuplicateEmailInOrg(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	repo := postgresql.NewEmployeeRepository(testDB)

	emp := testEmployee(orgID)
	_, err := repo.Create(ctx, emp)
	require.NoError(t, err)

	_, err = repo.Create(ctx, emp)
	assert.ErrorIs(t, err, employee.ErrDuplicateEmail)
}

func TestEmployeeRepository_Create_SameEmailOtherOrg(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := postgresql.NewEmployeeRepository(testDB)

	emp := testEmployee(createTestOrg(t, ctx))
	_, err := repo.Create(ctx, emp)
	require.NoError(t, err)

	emp.OrganizationID = createTestOrg(t, ctx)
	_, err = repo.Create(ctx, emp)
	assert.NoError(t, err)
}

func TestEmployeeRepository_GetByID_CrossTenantInvisible(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	otherOrgID := createTestOrg(t, ctx)
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, testEmployee(orgID))
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, otherOrgID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_LinkAuthID_ExactlyOnce(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, testEmployee(orgID))
	require.NoError(t, err)

	identityID := createTestIdentity(t, ctx)
	err = repo.LinkAuthID(ctx, created.ID, identityID)
	require.NoError(t, err)

	linked, err := repo.GetByAuthID(ctx, identityID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, linked.ID)

	// A second link attempt must lose, even with a fresh identity.
	otherIdentityID := createTestIdentity(t, ctx)
	err = repo.LinkAuthID(ctx, created.ID, otherIdentityID)
	assert.ErrorIs(t, err, employee.ErrAlreadyLinked)
}

func TestEmployeeRepository_ClearDepartment(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	employeeRepo := postgresql.NewEmployeeRepository(testDB)
	departmentRepo := postgresql.NewDepartmentRepository(testDB)

	dept, err := departmentRepo.Create(ctx, departmentFixture(orgID, "Engineering"))
	require.NoError(t, err)

	emp := testEmployee(orgID)
	emp.DepartmentID = &dept.ID
	created, err := employeeRepo.Create(ctx, emp)
	require.NoError(t, err)

	err = employeeRepo.ClearDepartment(ctx, dept.ID, orgID)
	require.NoError(t, err)

	reloaded, err := employeeRepo.GetByID(ctx, created.ID, orgID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.DepartmentID)
}
