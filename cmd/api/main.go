package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kerjahub/hris-backend/internal/config"
	appHTTP "github.com/kerjahub/hris-backend/internal/handler/http"
	"github.com/kerjahub/hris-backend/internal/pkg/database"
	"github.com/kerjahub/hris-backend/internal/pkg/email"
	"github.com/kerjahub/hris-backend/internal/pkg/oauth"
	"github.com/kerjahub/hris-backend/internal/pkg/token"
	"github.com/kerjahub/hris-backend/internal/repository/postgresql"
	attendanceService "github.com/kerjahub/hris-backend/internal/service/attendance"
	authService "github.com/kerjahub/hris-backend/internal/service/auth"
	billingService "github.com/kerjahub/hris-backend/internal/service/billing"
	departmentService "github.com/kerjahub/hris-backend/internal/service/department"
	employeeService "github.com/kerjahub/hris-backend/internal/service/employee"
	leaveService "github.com/kerjahub/hris-backend/internal/service/leave"
	settingsService "github.com/kerjahub/hris-backend/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	identityRepo := postgresql.NewIdentityRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	usageLogRepo := postgresql.NewUsageLogRepository(db)

	tokenSvc := token.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailSvc, err := email.NewService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authSvc := authService.NewAuthService(
		db,
		identityRepo,
		organizationRepo,
		employeeRepo,
		settingsRepo,
		invitationRepo,
		tokenSvc,
		googleSvc,
	)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	employeeSvc := employeeService.NewEmployeeService(
		db,
		employeeRepo,
		organizationRepo,
		departmentRepo,
		invitationRepo,
		emailSvc,
		cfg,
	)
	departmentSvc := departmentService.NewDepartmentService(db, departmentRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, settingsSvc)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, settingsSvc)
	billingSvc := billingService.NewBillingService(organizationRepo, employeeRepo, usageLogRepo)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:      cfg,
		Tokens:      tokenSvc,
		AuthService: authSvc,

		Auth:       appHTTP.NewAuthHandler(authSvc, tokenSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Billing:    appHTTP.NewBillingHandler(billingSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
