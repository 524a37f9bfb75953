package domain

import "time"

// AttendanceRecord tracks one employee's check-in state for one civil
// calendar day. The composite unique index is what makes two concurrent
// first check-ins for the same day collapse into a single row.
type AttendanceRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"uniqueIndex:idx_attendance_employee_day;not null" json:"employee_id"`
	Date       time.Time  `gorm:"uniqueIndex:idx_attendance_employee_day;not null" json:"date"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Employee *Employee `json:"employee,omitempty"`
}

// Open reports whether the record has a check-in without a check-out.
func (a *AttendanceRecord) Open() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// Worked returns the elapsed time between check-in and check-out. The
// second return is false while the record is not closed.
func (a *AttendanceRecord) Worked() (time.Duration, bool) {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0, false
	}
	return a.CheckOut.Sub(*a.CheckIn), true
}
