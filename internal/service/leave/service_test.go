package leave

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
	"github.com/kerjahub/hris-backend/internal/domain/leave"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
	settingsService "github.com/kerjahub/hris-backend/internal/service/settings"
)

var (
	testLeaveDB   *database.DB
	testLeaveOnce sync.Once
)

func leaveTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testLeaveOnce.Do(func() {
		var err error
		testLeaveDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	tables := []string{"leave_requests", "employees", "organization_settings", "organizations"}

	for _, table := range tables {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestLeaveService() leave.LeaveService {
	leaveRepo := postgresql.NewLeaveRequestRepository(testLeaveDB)
	employeeRepo := postgresql.NewEmployeeRepository(testLeaveDB)
	settingsRepo := postgresql.NewSettingsRepository(testLeaveDB)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	return NewLeaveService(testLeaveDB, leaveRepo, employeeRepo, settingsSvc)
}

func createLeaveTestOrg(t *testing.T, ctx context.Context) string {
	var orgID string
	slug := fmt.Sprintf("leave-test-%d", time.Now().UnixNano())
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Leave Test Org', $1)
		RETURNING id
	`, slug).Scan(&orgID)
	require.NoError(t, err)
	return orgID
}

func createLeaveTestEmployee(t *testing.T, ctx context.Context, orgID string, role string) string {
	var employeeID string
	email := fmt.Sprintf("employee-%d@test.local", time.Now().UnixNano())
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO employees (organization_id, employee_code, first_name, last_name, email, position, role, status)
		VALUES ($1, 'EMP0001', 'Test', 'Employee', $2, 'Staff', $3, 'active')
		RETURNING id
	`, orgID, email, role).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func seedApprovedLeave(t *testing.T, ctx context.Context, orgID string, employeeID string, leaveType string, start, end time.Time, totalDays int) {
	_, err := testLeaveDB.Exec(ctx, `
		INSERT INTO leave_requests (organization_id, employee_id, leave_type, start_date, end_date, total_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'seeded', 'approved')
	`, orgID, employeeID, leaveType, start, end, totalDays)
	require.NoError(t, err)
}

// mondayInCurrentYear returns a Monday at least `weeksFromJune` weeks into
// June of the current year, so quota sums over the calendar year see it.
func mondayInCurrentYear(weeksFromJune int) time.Time {
	d := time.Date(time.Now().Year(), time.June, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*weeksFromJune)
}

func leaveActor(orgID, employeeID string) authz.Actor {
	return authz.Actor{
		EmployeeID:     employeeID,
		OrganizationID: orgID,
		Role:           authz.RoleEmployee,
		Status:         "active",
	}
}

func TestLeaveService_Submit_Success(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)
	end := start.AddDate(0, 0, 1)

	created, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Reason:     "family event",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, 2, created.TotalDays)
}

func TestLeaveService_Submit_ConcurrentSameRangeOneWins(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()
	actor := leaveActor(orgID, employeeID)

	start := mondayInCurrentYear(4)
	req := leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:     "family event",
	}

	// Both submissions race through the overlap check. The per-employee
	// lock forces the second to wait for the first commit, so it sees the
	// inserted row and is rejected.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(ctx, actor, req)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, submitErr := range errs {
		if submitErr != nil {
			assert.ErrorIs(t, submitErr, leave.ErrOverlappingLeave)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	var count int
	err := testLeaveDB.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE employee_id = $1`, employeeID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLeaveService_Submit_QuotaArithmetic(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	// 10 of the default 12 annual days already approved this year.
	usedStart := mondayInCurrentYear(0)
	seedApprovedLeave(t, ctx, orgID, employeeID, "annual", usedStart, usedStart.AddDate(0, 0, 11), 10)

	// 3 more would exceed the quota; 2 days remain.
	start := mondayInCurrentYear(4)
	_, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.AddDate(0, 0, 2).Format("2006-01-02"),
		Reason:     "holiday",
	})
	var quotaErr *leave.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, leave.TypeAnnual, quotaErr.LeaveType)
	assert.Equal(t, 2, quotaErr.Remaining)

	// Exactly 2 days fits.
	created, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:     "holiday",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.TotalDays)
}

func TestLeaveService_Submit_UnpaidIgnoresQuota(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)

	// Three full weeks, far beyond any quota.
	created, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "unpaid",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.AddDate(0, 0, 18).Format("2006-01-02"),
		Reason:     "sabbatical",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, created.TotalDays)
}

func TestLeaveService_Submit_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)
	seedApprovedLeave(t, ctx, orgID, employeeID, "annual", start, start.AddDate(0, 0, 4), 5)

	// Sharing a single boundary day counts as overlap.
	_, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.AddDate(0, 0, 4).Format("2006-01-02"),
		EndDate:    start.AddDate(0, 0, 7).Format("2006-01-02"),
		Reason:     "holiday",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_Submit_OtherEmployeeForbidden(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	otherID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)
	_, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: otherID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.Format("2006-01-02"),
		Reason:     "holiday",
	})
	assert.ErrorIs(t, err, authz.ErrNotSelf)
}

func TestLeaveService_ApproveThenReject_AlreadyReviewed(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	reviewerID := createLeaveTestEmployee(t, ctx, orgID, "hr")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)
	created, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.Format("2006-01-02"),
		Reason:     "holiday",
	})
	require.NoError(t, err)

	reviewer := authz.Actor{
		EmployeeID:     reviewerID,
		OrganizationID: orgID,
		Role:           authz.RoleHR,
		Status:         "active",
	}

	approved, err := svc.Approve(ctx, reviewer, created.ID, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "Test Employee", *approved.ReviewedBy)

	_, err = svc.Reject(ctx, reviewer, created.ID, "changed my mind")
	var reviewedErr *leave.AlreadyReviewedError
	require.ErrorAs(t, err, &reviewedErr)
	assert.Equal(t, leave.StatusApproved, reviewedErr.Status)
}

func TestLeaveService_Approve_EmployeeRoleForbidden(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createLeaveTestOrg(t, ctx)
	employeeID := createLeaveTestEmployee(t, ctx, orgID, "employee")
	svc := newTestLeaveService()

	start := mondayInCurrentYear(0)
	created, err := svc.Submit(ctx, leaveActor(orgID, employeeID), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start.Format("2006-01-02"),
		EndDate:    start.Format("2006-01-02"),
		Reason:     "holiday",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leaveActor(orgID, employeeID), created.ID, "")
	assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)
}
