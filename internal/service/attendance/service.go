package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kerjahub/hris-backend/internal/domain/attendance"
	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/settings"
)

type AttendanceServiceImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	settingsService settings.SettingsService
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	settingsService settings.SettingsService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo:  attendanceRepo,
		settingsService: settingsService,
	}
}

// CheckIn implements attendance.AttendanceService. The fast-path existence
// check gives a friendly error; the unique index on (employee_id, date) is
// what actually holds under concurrent requests.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, actor authz.Actor, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	if err := authz.AuthorizeSelf(actor, authz.ActionCheckIn, actor.OrganizationID, req.EmployeeID); err != nil {
		return attendance.Attendance{}, err
	}

	now := time.Now()
	today := attendance.DateOf(now)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today, actor.OrganizationID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	orgSettings, err := s.settingsService.ForOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("get settings: %w", err)
	}

	status, err := attendance.DeriveStatus(now, orgSettings.WorkStartTime)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return s.attendanceRepo.Create(ctx, attendance.Attendance{
		OrganizationID: actor.OrganizationID,
		EmployeeID:     actor.EmployeeID,
		Date:           today,
		CheckIn:        now,
		Status:         status,
	})
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, actor authz.Actor, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.CheckOutResponse{}, err
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("get attendance: %w", err)
	}

	if err := authz.AuthorizeSelf(actor, authz.ActionCheckOut, att.OrganizationID, att.EmployeeID); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := time.Now()
	if err := s.attendanceRepo.SetCheckOut(ctx, att.ID, actor.OrganizationID, now); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	att.CheckOut = &now
	return attendance.CheckOutResponse{
		Attendance:   att,
		WorkDuration: att.WorkDuration().Round(time.Second).String(),
	}, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, actor authz.Actor, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	if err := authz.Authorize(actor, authz.ActionAttendanceView, actor.OrganizationID); err != nil {
		return nil, 0, err
	}

	return s.attendanceRepo.List(ctx, filter, actor.OrganizationID)
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, actor authz.Actor, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	return s.attendanceRepo.ListByEmployee(ctx, actor.EmployeeID, filter, actor.OrganizationID)
}
