package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		// 2025-03-10 is a Monday.
		{"full work week", date(2025, 3, 10), date(2025, 3, 14), 5},
		{"week including weekend", date(2025, 3, 10), date(2025, 3, 16), 5},
		{"weekend only", date(2025, 3, 15), date(2025, 3, 16), 0},
		{"single weekday", date(2025, 3, 12), date(2025, 3, 12), 1},
		{"single saturday", date(2025, 3, 15), date(2025, 3, 15), 0},
		{"two full weeks", date(2025, 3, 10), date(2025, 3, 23), 10},
		{"spanning saturday to monday", date(2025, 3, 15), date(2025, 3, 17), 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkingDays(c.start, c.end))
		})
	}
}

func TestParseLeaveType(t *testing.T) {
	for _, s := range []string{"annual", "sick", "unpaid", "emergency", "maternity", "paternity"} {
		lt, ok := ParseLeaveType(s)
		assert.True(t, ok)
		assert.Equal(t, LeaveType(s), lt)
	}
	_, ok := ParseLeaveType("sabbatical")
	assert.False(t, ok)
}

func TestLeaveTypeHasQuota(t *testing.T) {
	assert.True(t, TypeAnnual.HasQuota())
	assert.True(t, TypeSick.HasQuota())
	for _, lt := range []LeaveType{TypeUnpaid, TypeEmergency, TypeMaternity, TypePaternity} {
		assert.False(t, lt.HasQuota(), "type=%s", lt)
	}
}
