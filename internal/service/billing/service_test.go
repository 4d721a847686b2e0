package billing

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
	"github.com/kerjahub/hris-backend/internal/domain/billing"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

var (
	testBillingDB   *database.DB
	testBillingOnce sync.Once
)

func billingTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testBillingOnce.Do(func() {
		var err error
		testBillingDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
}

func truncateBillingTables(t *testing.T, ctx context.Context) {
	tables := []string{"usage_logs", "employees", "organizations"}

	for _, table := range tables {
		_, err := testBillingDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestBillingService() billing.BillingService {
	organizationRepo := postgresql.NewOrganizationRepository(testBillingDB)
	employeeRepo := postgresql.NewEmployeeRepository(testBillingDB)
	usageLogRepo := postgresql.NewUsageLogRepository(testBillingDB)

	return NewBillingService(organizationRepo, employeeRepo, usageLogRepo)
}

func createBillingTestOrg(t *testing.T, ctx context.Context) string {
	var orgID string
	slug := fmt.Sprintf("billing-test-%d", time.Now().UnixNano())
	err := testBillingDB.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Billing Test Org', $1)
		RETURNING id
	`, slug).Scan(&orgID)
	require.NoError(t, err)
	return orgID
}

func createBillingTestEmployee(t *testing.T, ctx context.Context, orgID string, status string) {
	email := fmt.Sprintf("employee-%d@test.local", time.Now().UnixNano())
	_, err := testBillingDB.Exec(ctx, `
		INSERT INTO employees (organization_id, employee_code, first_name, last_name, email, position, status)
		VALUES ($1, 'EMP0001', 'Test', 'Employee', $2, 'Staff', $3)
	`, orgID, email, status)
	require.NoError(t, err)
}

func billingActor(orgID string, role authz.Role) authz.Actor {
	return authz.Actor{
		EmployeeID:     "00000000-0000-0000-0000-000000000001",
		OrganizationID: orgID,
		Role:           role,
		Status:         "active",
	}
}

func TestBillingService_GetUsage_CountsActiveAgainstPlan(t *testing.T) {
	ctx := context.Background()
	billingTestInit(t)
	truncateBillingTables(t, ctx)

	orgID := createBillingTestOrg(t, ctx)
	createBillingTestEmployee(t, ctx, orgID, "active")
	createBillingTestEmployee(t, ctx, orgID, "active")
	createBillingTestEmployee(t, ctx, orgID, "terminated")
	svc := newTestBillingService()

	usage, err := svc.GetUsage(ctx, billingActor(orgID, authz.RoleOwner))
	require.NoError(t, err)

	assert.Equal(t, "free", usage.PlanType)
	assert.Equal(t, "Free", usage.PlanName)
	assert.Equal(t, int64(2), usage.EmployeeCount)
	assert.Equal(t, 10, usage.EmployeeLimit)
	require.NotNil(t, usage.SeatsRemaining)
	assert.Equal(t, int64(8), *usage.SeatsRemaining)
	assert.Empty(t, usage.History)
}

func TestBillingService_RecordUsage_AppearsInHistory(t *testing.T) {
	ctx := context.Background()
	billingTestInit(t)
	truncateBillingTables(t, ctx)

	orgID := createBillingTestOrg(t, ctx)
	createBillingTestEmployee(t, ctx, orgID, "active")
	svc := newTestBillingService()
	owner := billingActor(orgID, authz.RoleOwner)

	log, err := svc.RecordUsage(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), log.EmployeeCount)
	assert.Equal(t, int64(0), log.StorageUsedMB)

	usage, err := svc.GetUsage(ctx, owner)
	require.NoError(t, err)
	require.Len(t, usage.History, 1)
	assert.Equal(t, log.ID, usage.History[0].ID)
}

func TestBillingService_UsageIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	billingTestInit(t)
	truncateBillingTables(t, ctx)

	orgID := createBillingTestOrg(t, ctx)
	svc := newTestBillingService()

	_, err := svc.GetUsage(ctx, billingActor(orgID, authz.RoleAdmin))
	assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)

	_, err = svc.RecordUsage(ctx, billingActor(orgID, authz.RoleAdmin))
	assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)
}
