package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/domain/invitation"
	"github.com/kerjahub/hris-backend/internal/domain/organization"
	"github.com/kerjahub/hris-backend/internal/domain/settings"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/pkg/oauth"
	"github.com/kerjahub/hris-backend/internal/pkg/token"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
)

// Organizations start on the free plan with room to grow before the first
// upgrade prompt.
const registrationEmployeeLimit = 10

type AuthServiceImpl struct {
	db               *database.DB
	identityRepo     auth.IdentityRepository
	organizationRepo organization.OrganizationRepository
	employeeRepo     employee.EmployeeRepository
	settingsRepo     settings.SettingsRepository
	invitationRepo   invitation.InvitationRepository
	tokenService     token.Service
	googleService    oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	identityRepo auth.IdentityRepository,
	organizationRepo organization.OrganizationRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	invitationRepo invitation.InvitationRepository,
	tokenService token.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:               db,
		identityRepo:     identityRepo,
		organizationRepo: organizationRepo,
		employeeRepo:     employeeRepo,
		settingsRepo:     settingsRepo,
		invitationRepo:   invitationRepo,
		tokenService:     tokenService,
		googleService:    googleService,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. Organization, default settings,
// owner employee and identity are created in one transaction; a failure at
// any step leaves no partial tenant behind.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	// Email uniqueness is left to the identities constraint inside the
	// transaction; a duplicate rolls back the organization and settings
	// inserts with it.
	if _, err := a.organizationRepo.GetBySlug(ctx, req.OrganizationSlug); err == nil {
		return auth.TokenResponse{}, organization.ErrSlugTaken
	} else if !errors.Is(err, organization.ErrOrganizationNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("check slug: %w", err)
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("hash password: %w", err)
	}

	var identityID string
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		org, err := a.organizationRepo.Create(txCtx, organization.Organization{
			Name:               req.OrganizationName,
			Slug:               req.OrganizationSlug,
			PlanType:           organization.PlanFree,
			SubscriptionStatus: organization.SubscriptionActive,
			EmployeeLimit:      registrationEmployeeLimit,
		})
		if err != nil {
			return err
		}

		if _, err := a.settingsRepo.Create(txCtx, settings.Defaults(org.ID)); err != nil {
			return fmt.Errorf("create settings: %w", err)
		}

		identity, err := a.identityRepo.Create(txCtx, auth.Identity{
			Email:        req.Email,
			PasswordHash: &passwordHash,
		})
		if err != nil {
			return err
		}
		identityID = identity.ID

		_, err = a.employeeRepo.Create(txCtx, employee.Employee{
			OrganizationID: org.ID,
			AuthID:         &identity.ID,
			EmployeeCode:   employee.Code(org.Slug, 0),
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Position:       "Owner",
			Role:           authz.RoleOwner,
			Status:         employee.StatusActive,
			EmploymentType: employee.EmploymentFullTime,
			BaseSalary:     decimal.Zero,
			Currency:       "IDR",
			JoinDate:       time.Now(),
		})
		if err != nil {
			return fmt.Errorf("create owner employee: %w", err)
		}

		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(identityID, req.Email)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	identity, err := a.identityRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrIdentityNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("get identity: %w", err)
	}

	if identity.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(identity.ID, identity.Email)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context) (string, string, error) {
	state := a.googleService.GenerateState("")
	if state == "" {
		return "", "", errors.New("generate oauth state")
	}
	return a.googleService.RedirectURL(state), state, nil
}

// OAuthCallbackGoogle implements auth.AuthService. Google sign-in only
// authenticates identities that already exist; it never provisions a tenant.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	tok, err := a.googleService.ExchangeCode(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	googleUser, err := a.googleService.FetchUser(ctx, tok)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !googleUser.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	identity, err := a.identityRepo.GetByGoogleID(ctx, googleUser.GoogleID)
	if errors.Is(err, auth.ErrIdentityNotFound) {
		// First Google sign-in for a password account with the same
		// verified email attaches the Google subject.
		identity, err = a.identityRepo.GetByEmail(ctx, googleUser.Email)
		if err != nil {
			if errors.Is(err, auth.ErrIdentityNotFound) {
				return auth.TokenResponse{}, auth.ErrInvalidCredentials
			}
			return auth.TokenResponse{}, fmt.Errorf("get identity by email: %w", err)
		}
		if err := a.identityRepo.SetGoogleID(ctx, identity.ID, googleUser.GoogleID); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("link google id: %w", err)
		}
	} else if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("get identity by google id: %w", err)
	}

	return a.issueTokens(identity.ID, identity.Email)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	if a.tokenService.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := a.tokenService.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if err := jwtValidate(decoded.Expiration()); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	claims, err := decoded.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	identityID, _ := claims["identity_id"].(string)
	if identityID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	identity, err := a.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, auth.ErrIdentityNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("get identity: %w", err)
	}

	accessToken, expiresAt, err := a.tokenService.GenerateAccessToken(identity.ID, identity.Email)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

func jwtValidate(expiration time.Time) error {
	if !expiration.IsZero() && time.Now().After(expiration) {
		return auth.ErrTokenExpired
	}
	return nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		a.tokenService.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		a.tokenService.RevokeToken(refreshToken)
	}
	return nil
}

// UpdatePassword implements auth.AuthService.
func (a *AuthServiceImpl) UpdatePassword(ctx context.Context, identityID string, req auth.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	identity, err := a.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return err
	}

	if identity.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	newHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return a.identityRepo.UpdatePassword(ctx, identityID, newHash)
}

// AcceptInvitation implements auth.AuthService. Identity creation, the
// exactly-once employee link and invitation consumption commit together.
func (a *AuthServiceImpl) AcceptInvitation(ctx context.Context, req auth.AcceptInvitationRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	inv, err := a.invitationRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if inv.Status == invitation.StatusAccepted {
		return auth.TokenResponse{}, invitation.ErrAlreadyAccepted
	}
	if inv.Expired(time.Now()) {
		return auth.TokenResponse{}, invitation.ErrInvitationExpired
	}

	taken, err := a.identityRepo.ExistsByEmail(ctx, inv.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return auth.TokenResponse{}, auth.ErrEmailTaken
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("hash password: %w", err)
	}

	var identityID string
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		identity, err := a.identityRepo.Create(txCtx, auth.Identity{
			Email:         inv.Email,
			PasswordHash:  &passwordHash,
			EmailVerified: true,
		})
		if err != nil {
			return err
		}
		identityID = identity.ID

		if err := a.employeeRepo.LinkAuthID(txCtx, inv.EmployeeID, identity.ID); err != nil {
			return err
		}

		return a.invitationRepo.MarkAccepted(txCtx, inv.ID)
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(identityID, inv.Email)
}

// LinkIdentity implements auth.AuthService. The email match only considers
// employees whose auth_id is NULL; a second call for the same identity
// finds no candidate and fails like any other miss.
func (a *AuthServiceImpl) LinkIdentity(ctx context.Context, identityID string) (employee.Employee, error) {
	identity, err := a.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := a.employeeRepo.GetUnlinkedByEmail(ctx, identity.Email)
	if err != nil {
		return employee.Employee{}, err
	}

	if err := a.employeeRepo.LinkAuthID(ctx, emp.ID, identity.ID); err != nil {
		return employee.Employee{}, err
	}

	return a.employeeRepo.GetByID(ctx, emp.ID, emp.OrganizationID)
}

// ResolveActor implements auth.AuthService. The employee row, not the
// token, is the source of tenant and role; a deleted or reassigned
// employee is picked up on the very next request.
func (a *AuthServiceImpl) ResolveActor(ctx context.Context, identityID string) (authz.Actor, error) {
	emp, err := a.employeeRepo.GetByAuthID(ctx, identityID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return authz.Actor{}, auth.ErrActorNotFound
		}
		return authz.Actor{}, fmt.Errorf("resolve actor: %w", err)
	}

	return authz.Actor{
		EmployeeID:     emp.ID,
		OrganizationID: emp.OrganizationID,
		Role:           emp.Role,
		Status:         string(emp.Status),
	}, nil
}

func (a *AuthServiceImpl) issueTokens(identityID string, email string) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.tokenService.GenerateAccessToken(identityID, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("generate access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.tokenService.GenerateRefreshToken(identityID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return resp, nil
}
