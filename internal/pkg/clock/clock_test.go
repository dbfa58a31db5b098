package clock

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_NowAppliesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	// 03:30 UTC is 22:30 of the previous day in Ecuador (UTC-5).
	instant := time.Date(2024, 3, 1, 3, 30, 0, 0, time.UTC)
	c := NewWithNow(loc, func() time.Time { return instant })

	assert.Equal(t, civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.February, Day: 29},
		Time: civil.Time{Hour: 22, Minute: 30},
	}, c.Now())
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, c.Today())
	assert.Equal(t, loc, c.Location())
}

func TestClock_NilLocationDefaultsToUTC(t *testing.T) {
	instant := time.Date(2024, 3, 1, 3, 30, 0, 0, time.UTC)
	c := NewWithNow(nil, func() time.Time { return instant })

	assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 1}, c.Today())
}
