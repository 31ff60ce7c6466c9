package bankholidays_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/bankholidays"
)

func TestFallbackIncludesNewYearAndChristmas(t *testing.T) {
	holidays := bankholidays.Fallback(2025)
	require.Len(t, holidays, 2)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), holidays[0].Date)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), holidays[1].Date)
}
