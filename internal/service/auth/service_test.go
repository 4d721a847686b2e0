package auth

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/pkg/oauth"
	"github.com/kerjahub/hris-backend/internal/pkg/token"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

var (
	testAuthDB   *database.DB
	testAuthOnce sync.Once
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func authTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testAuthOnce.Do(func() {
		var err error
		testAuthDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	tables := []string{"invitations", "leave_requests", "attendances", "employees", "departments", "organization_settings", "identities", "organizations"}

	for _, table := range tables {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestAuthService() auth.AuthService {
	identityRepo := postgresql.NewIdentityRepository(testAuthDB)
	organizationRepo := postgresql.NewOrganizationRepository(testAuthDB)
	employeeRepo := postgresql.NewEmployeeRepository(testAuthDB)
	settingsRepo := postgresql.NewSettingsRepository(testAuthDB)
	invitationRepo := postgresql.NewInvitationRepository(testAuthDB)
	tokenSvc := token.NewService(testSecret, testAccessExp, testRefreshExp)
	googleSvc := oauth.NewGoogleService("", "", "", nil)

	return NewAuthService(testAuthDB, identityRepo, organizationRepo, employeeRepo, settingsRepo, invitationRepo, tokenSvc, googleSvc)
}

func registerRequest(slug string, email string) auth.RegisterRequest {
	return auth.RegisterRequest{
		OrganizationName: "Test Organization",
		OrganizationSlug: slug,
		FirstName:        "Ahmad",
		LastName:         "Santoso",
		Email:            email,
		Password:         "password123",
		ConfirmPassword:  "password123",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	tokens, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	organizationRepo := postgresql.NewOrganizationRepository(testAuthDB)
	org, err := organizationRepo.GetBySlug(ctx, "acme-corp")
	require.NoError(t, err)
	assert.Equal(t, "free", string(org.PlanType))
	assert.Equal(t, 10, org.EmployeeLimit)

	settingsRepo := postgresql.NewSettingsRepository(testAuthDB)
	orgSettings, err := settingsRepo.GetByOrganizationID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", orgSettings.WorkStartTime)
	assert.Equal(t, "17:00", orgSettings.WorkEndTime)
	assert.Equal(t, 5, orgSettings.WorkingDaysPerWeek)
	assert.Equal(t, 12, orgSettings.AnnualLeaveQuota)
	assert.Equal(t, 12, orgSettings.SickLeaveQuota)
	assert.Equal(t, "Asia/Jakarta", orgSettings.Timezone)

	identityRepo := postgresql.NewIdentityRepository(testAuthDB)
	identity, err := identityRepo.GetByEmail(ctx, "owner@acme.test")
	require.NoError(t, err)

	employeeRepo := postgresql.NewEmployeeRepository(testAuthDB)
	owner, err := employeeRepo.GetByAuthID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, owner.OrganizationID)
	assert.Equal(t, "ACM0001", owner.EmployeeCode)
	assert.Equal(t, "owner", string(owner.Role))
	assert.Equal(t, "Owner", owner.Position)
	assert.True(t, owner.BaseSalary.IsZero())
	assert.Equal(t, "IDR", owner.Currency)
}

func TestAuthService_Register_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "first@acme.test"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("acme-corp", "second@acme.test"))
	assert.Error(t, err)

	// The failed registration must not leave a partial tenant behind.
	identityRepo := postgresql.NewIdentityRepository(testAuthDB)
	exists, err := identityRepo.ExistsByEmail(ctx, "second@acme.test")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthService_Register_DuplicateEmailRollsBackTenant(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	// The duplicate email is only caught at the identity insert, after the
	// organization and settings rows were already written in the same
	// transaction. The failure must take all of them back with it.
	_, err = svc.Register(ctx, registerRequest("other-corp", "owner@acme.test"))
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	var orgCount int
	err = testAuthDB.QueryRow(ctx, `SELECT COUNT(*) FROM organizations WHERE slug = 'other-corp'`).Scan(&orgCount)
	require.NoError(t, err)
	assert.Equal(t, 0, orgCount)

	var settingsCount int
	err = testAuthDB.QueryRow(ctx, `SELECT COUNT(*) FROM organization_settings`).Scan(&settingsCount)
	require.NoError(t, err)
	assert.Equal(t, 1, settingsCount)

	var identityCount int
	err = testAuthDB.QueryRow(ctx, `SELECT COUNT(*) FROM identities`).Scan(&identityCount)
	require.NoError(t, err)
	assert.Equal(t, 1, identityCount)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@acme.test", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "owner@acme.test", Password: "wrongpassword"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@acme.test", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	tokens, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Greater(t, refreshed.AccessTokenExpiresIn, time.Now().Unix())
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	tokens, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	err = svc.Logout(ctx, tokens.AccessToken, tokens.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Error(t, err)
}

func TestAuthService_ResolveActor_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	identityRepo := postgresql.NewIdentityRepository(testAuthDB)
	identity, err := identityRepo.GetByEmail(ctx, "owner@acme.test")
	require.NoError(t, err)

	actor, err := svc.ResolveActor(ctx, identity.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, actor.EmployeeID)
	assert.NotEmpty(t, actor.OrganizationID)
	assert.Equal(t, "owner", string(actor.Role))
}

func TestAuthService_ResolveActor_NoLinkedEmployee(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	var identityID string
	err := testAuthDB.QueryRow(ctx, `
		INSERT INTO identities (email, password_hash, email_verified)
		VALUES ('orphan@acme.test', 'x', true)
		RETURNING id
	`).Scan(&identityID)
	require.NoError(t, err)

	_, err = svc.ResolveActor(ctx, identityID)
	assert.ErrorIs(t, err, auth.ErrActorNotFound)
}

func TestAuthService_LinkIdentity_MatchesUnlinkedEmployeeByEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Register(ctx, registerRequest("acme-corp", "owner@acme.test"))
	require.NoError(t, err)

	var orgID string
	err = testAuthDB.QueryRow(ctx, `SELECT id FROM organizations WHERE slug = 'acme-corp'`).Scan(&orgID)
	require.NoError(t, err)

	// Admin-provisioned employee, no identity yet.
	_, err = testAuthDB.Exec(ctx, `
		INSERT INTO employees (organization_id, employee_code, first_name, last_name, email, position)
		VALUES ($1, 'ACM0002', 'New', 'Hire', 'hire@acme.test', 'Staff')
	`, orgID)
	require.NoError(t, err)

	var identityID string
	err = testAuthDB.QueryRow(ctx, `
		INSERT INTO identities (email, password_hash, email_verified)
		VALUES ('hire@acme.test', 'x', true)
		RETURNING id
	`).Scan(&identityID)
	require.NoError(t, err)

	emp, err := svc.LinkIdentity(ctx, identityID)
	require.NoError(t, err)
	require.NotNil(t, emp.AuthID)
	assert.Equal(t, identityID, *emp.AuthID)

	// The employee is linked now, so a second identity cannot claim it.
	_, err = svc.LinkIdentity(ctx, identityID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
