package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found or inactive")
	ErrNoOpenCheckIn    = errors.New("no open check-in for today")
	// ErrCheckOutBeforeCheckIn guards against clock skew or tampering; the
	// check-out instant must be strictly after the stored check-in.
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
	ErrForbidden             = errors.New("caller may not access this record")
)

// AlreadyCheckedInError reports the stored check-in time so the screen can
// echo it back to the user.
type AlreadyCheckedInError struct {
	At time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in today at %s", e.At.Format("15:04"))
}

type AlreadyCheckedOutError struct {
	At time.Time
}

func (e *AlreadyCheckedOutError) Error() string {
	return fmt.Sprintf("already checked out today at %s", e.At.Format("15:04"))
}

type AttendanceRepositoryInterface interface {
	FindByEmployeeAndDate(employeeID uint, date time.Time) (*domain.AttendanceRecord, error)
	Create(record *domain.AttendanceRecord) error
	Update(record *domain.AttendanceRecord) error
	ListRange(employeeID uint, from, to time.Time) ([]domain.AttendanceRecord, error)
	ListByDate(date time.Time) ([]domain.AttendanceRecord, error)
}

type EmployeeFinder interface {
	FindActiveByID(id uint) (*domain.Employee, error)
	FindByEmail(email string) (*domain.Employee, error)
}

// AttendanceService owns the per-employee per-day check-in state machine:
// NoRecord -> CheckedIn -> CheckedOut, bucketed by the workshop's fixed
// civil timezone rather than the host zone.
type AttendanceService struct {
	records   AttendanceRepositoryInterface
	employees EmployeeFinder
	location  *time.Location
}

func NewAttendanceService(records AttendanceRepositoryInterface, employees EmployeeFinder, location *time.Location) *AttendanceService {
	return &AttendanceService{records: records, employees: employees, location: location}
}

type CheckInResult struct {
	Employee *domain.Employee         `json:"employee"`
	Record   *domain.AttendanceRecord `json:"record"`
}

type CheckOutResult struct {
	Employee *domain.Employee         `json:"employee"`
	Record   *domain.AttendanceRecord `json:"record"`
	Worked   string                   `json:"worked"`
}

// CheckIn opens today's record for an active employee. A second check-in on
// the same civil day fails without altering the stored time.
func (s *AttendanceService) CheckIn(employeeID uint, now time.Time) (*CheckInResult, error) {
	employee, err := s.employees.FindActiveByID(employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	localNow := now.In(s.location)
	day := civilDay(localNow)

	record, err := s.records.FindByEmployeeAndDate(employeeID, day)
	switch {
	case err == nil:
		if record.CheckIn != nil {
			return nil, &AlreadyCheckedInError{At: *record.CheckIn}
		}
		// Partial row without a check-in: complete it.
		record.CheckIn = &localNow
		if err := s.records.Update(record); err != nil {
			return nil, err
		}
		return &CheckInResult{Employee: employee, Record: record}, nil

	case errors.Is(err, repository.ErrNotFound):
		record = &domain.AttendanceRecord{EmployeeID: employeeID, Date: day, CheckIn: &localNow}
		if err := s.records.Create(record); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// Lost the race against a concurrent first check-in; report
				// the winner's stored time.
				if existing, findErr := s.records.FindByEmployeeAndDate(employeeID, day); findErr == nil && existing.CheckIn != nil {
					return nil, &AlreadyCheckedInError{At: *existing.CheckIn}
				}
			}
			return nil, err
		}
		return &CheckInResult{Employee: employee, Record: record}, nil

	default:
		return nil, err
	}
}

// CheckOut closes today's record. All checks run before the single write;
// a failed call leaves storage untouched.
func (s *AttendanceService) CheckOut(employeeID uint, now time.Time) (*CheckOutResult, error) {
	employee, err := s.employees.FindActiveByID(employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	localNow := now.In(s.location)
	day := civilDay(localNow)

	record, err := s.records.FindByEmployeeAndDate(employeeID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoOpenCheckIn
	}
	if err != nil {
		return nil, err
	}
	if record.CheckIn == nil {
		return nil, ErrNoOpenCheckIn
	}
	if record.CheckOut != nil {
		return nil, &AlreadyCheckedOutError{At: *record.CheckOut}
	}
	if !localNow.After(*record.CheckIn) {
		return nil, ErrCheckOutBeforeCheckIn
	}

	record.CheckOut = &localNow
	if err := s.records.Update(record); err != nil {
		return nil, err
	}

	worked, _ := record.Worked()
	return &CheckOutResult{
		Employee: employee,
		Record:   record,
		Worked:   FormatWorked(worked),
	}, nil
}

// ListRange returns one employee's records between two civil dates
// inclusive. The bounds are calendar dates, not instants, so they are
// normalized by their own date components without any zone conversion.
// Non-admin callers may only read their own history, resolved by matching
// their account email against the employee row.
func (s *AttendanceService) ListRange(caller domain.Caller, employeeID uint, from, to time.Time) ([]domain.AttendanceRecord, error) {
	if !caller.IsAdmin() {
		own, err := s.employees.FindByEmail(caller.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		if own.ID != employeeID {
			return nil, ErrForbidden
		}
	}
	return s.records.ListRange(employeeID, civilDay(from), civilDay(to))
}

// TodayBoard lists every record for the current civil day, for the
// check-in/out screen.
func (s *AttendanceService) TodayBoard(now time.Time) ([]domain.AttendanceRecord, error) {
	return s.records.ListByDate(civilDay(now.In(s.location)))
}

// DefaultRange is the current civil month: first day through today.
func (s *AttendanceService) DefaultRange(now time.Time) (time.Time, time.Time) {
	local := now.In(s.location)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, civilDay(local)
}

// FormatWorked renders a duration as whole hours plus remainder minutes,
// e.g. "9h 30m".
func FormatWorked(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// civilDay collapses a local instant to its calendar date. The date is keyed
// in UTC midnight so lookups compare equal regardless of offset arithmetic.
func civilDay(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
