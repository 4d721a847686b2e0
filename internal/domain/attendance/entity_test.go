package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	day := func(h, m, s int) time.Time {
		return time.Date(2025, 3, 10, h, m, s, 0, time.UTC)
	}

	cases := []struct {
		name      string
		checkIn   time.Time
		workStart string
		want      Status
	}{
		{"exactly at work start", day(9, 0, 0), "09:00", StatusPresent},
		{"one second after", day(9, 0, 1), "09:00", StatusLate},
		{"one minute after", day(9, 1, 0), "09:00", StatusLate},
		{"well before", day(8, 15, 0), "09:00", StatusPresent},
		{"custom start, on time", day(7, 30, 0), "07:30", StatusPresent},
		{"custom start, late", day(7, 30, 1), "07:30", StatusLate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DeriveStatus(c.checkIn, c.workStart)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDeriveStatus_InvalidWorkStart(t *testing.T) {
	_, err := DeriveStatus(time.Now(), "9am")
	assert.Error(t, err)
}

func TestWorkDuration(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)

	att := Attendance{CheckIn: checkIn, CheckOut: &checkOut}
	assert.Equal(t, 8*time.Hour+30*time.Minute, att.WorkDuration())

	open := Attendance{CheckIn: checkIn}
	assert.Equal(t, time.Duration(0), open.WorkDuration())
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(ts))
}
