package dateutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/pkg/dateutil"
)

func TestToday_UsesInjectedClock(t *testing.T) {
	clock := dateutil.FixedClock(time.Date(2026, 2, 6, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-02-06", dateutil.Today(clock))
}

func TestDateOnly(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"rfc3339 utc", "2026-02-06T15:30:00Z", "2026-02-06", nil},
		{"rfc3339 offset", "2026-02-06T23:30:00+07:00", "2026-02-06", nil},
		{"no zone", "2026-02-06T15:30:00", "2026-02-06", nil},
		{"bare date", "2026-02-06", "2026-02-06", nil},
		{"garbage", "yesterday-ish", "", domain.ErrInvalidTimestamp},
		{"empty", "", "", domain.ErrInvalidTimestamp},
		{"unpadded", "2026-2-6", "", domain.ErrInvalidTimestamp},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateutil.DateOnly(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddDays_Rollover(t *testing.T) {
	got, err := dateutil.AddDays("2026-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got)

	got, err = dateutil.AddDays("2026-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2027-01-01", got)

	got, err = dateutil.AddDays("2028-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2028-02-29", got, "2028 is a leap year")

	got, err = dateutil.AddDays("2026-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)

	_, err = dateutil.AddDays("not-a-date", 1)
	require.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestCompare_TotalOrder(t *testing.T) {
	assert.Equal(t, -1, dateutil.Compare("2026-02-06", "2026-02-13"))
	assert.Equal(t, 0, dateutil.Compare("2026-02-06", "2026-02-06"))
	assert.Equal(t, 1, dateutil.Compare("2026-10-01", "2026-09-30"))
}
