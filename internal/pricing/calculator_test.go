package pricing

import (
	"testing"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSheet = models.PricingSheet{
	HourlyRate:     10,
	DailyRate:      100,
	WeeklyRate:     500,
	MonthlyRate:    1500,
	InsurancePrice: 50,
	ChildSeatPrice: 20,
	GPSPrice:       30,
}

func TestNormalizeClock(t *testing.T) {
	normalized, err := NormalizeClock("9:5")
	require.NoError(t, err)
	assert.Equal(t, "09:05", normalized)

	normalized, err = NormalizeClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", normalized)

	for _, bad := range []string{"25:00", "12:60", "noon", "12", "12:00:00", "-1:30"} {
		_, err := NormalizeClock(bad)
		require.Error(t, err, "expected %q to be rejected", bad)
		assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
	}
}

func TestElapsed(t *testing.T) {
	// 2 days and 2 hours apart
	window, err := Elapsed("2024-01-01", "09:00", "2024-01-03", "11:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Days: 2, Hours: 2}, window)

	// exact multiple of 24h leaves no hour remainder
	window, err = Elapsed("2024-01-01", "09:00", "2024-01-03", "09:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Days: 2, Hours: 0}, window)

	// partial hours round up
	window, err = Elapsed("2024-01-01", "09:00", "2024-01-01", "09:30")
	require.NoError(t, err)
	assert.Equal(t, Window{Days: 0, Hours: 1}, window)

	// end before start clamps to zero instead of going negative
	window, err = Elapsed("2024-01-03", "09:00", "2024-01-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Days: 0, Hours: 0}, window)
}

func TestRentalCost(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		class  models.DurationClass
		want   float64
	}{
		{"hourly charges every hour", Window{Days: 2, Hours: 2}, models.DurationHourly, 500},
		{"hourly minimum is one hour", Window{}, models.DurationHourly, 10},
		{"daily rounds partial day up", Window{Days: 2, Hours: 2}, models.DurationDaily, 300},
		{"daily exact days", Window{Days: 2, Hours: 0}, models.DurationDaily, 200},
		{"daily minimum is one day", Window{}, models.DurationDaily, 100},
		{"weekly rounds days up to a week", Window{Days: 3, Hours: 0}, models.DurationWeekly, 500},
		{"weekly two weeks", Window{Days: 8, Hours: 0}, models.DurationWeekly, 1000},
		{"monthly minimum is one month", Window{Days: 2, Hours: 5}, models.DurationMonthly, 1500},
		{"monthly two months", Window{Days: 31, Hours: 0}, models.DurationMonthly, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := RentalCost(tt.window, tt.class, testSheet)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)
		})
	}
}

func TestRentalCost_InvalidInputs(t *testing.T) {
	_, err := RentalCost(Window{Days: 1}, "yearly", testSheet)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	badSheet := testSheet
	badSheet.DailyRate = -1
	_, err = RentalCost(Window{Days: 1}, models.DurationDaily, badSheet)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidConfiguration, utils.KindOf(err))
}

// A longer window must never cost less than a shorter one in the same
// duration class.
func TestRentalCost_Monotonic(t *testing.T) {
	classes := []models.DurationClass{
		models.DurationHourly, models.DurationDaily,
		models.DurationWeekly, models.DurationMonthly,
	}

	for _, class := range classes {
		previous := 0.0
		for days := 0; days <= 40; days++ {
			cost, err := RentalCost(Window{Days: days, Hours: 3}, class, testSheet)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cost, previous, "class %s at %d days", class, days)
			previous = cost
		}
	}
}

func TestAddOnCosts(t *testing.T) {
	costs := AddOnCosts(models.AdditionalFeatures{Insurance: true, GPS: true}, testSheet)
	assert.Equal(t, 50.0, costs.InsuranceCost)
	assert.Equal(t, 30.0, costs.GPSCost)
	assert.Equal(t, 0.0, costs.ChildSeatCost)
	assert.Equal(t, 80.0, costs.Sum())

	none := AddOnCosts(models.AdditionalFeatures{}, testSheet)
	assert.Equal(t, 0.0, none.Sum())
}

func TestCalculateQuote(t *testing.T) {
	quote, err := CalculateQuote(
		"2024-01-01", "09:00", "2024-01-03", "11:00",
		models.DurationDaily,
		models.AdditionalFeatures{Insurance: true, ChildSeat: true},
		testSheet,
	)
	require.NoError(t, err)

	assert.Equal(t, 300.0, quote.BaseCost)
	assert.Equal(t, 70.0, quote.AdditionalCosts.Sum())
	assert.Equal(t, quote.BaseCost+quote.AdditionalCosts.Sum(), quote.TotalCost)
}

func TestCalculateQuote_InvalidDate(t *testing.T) {
	_, err := CalculateQuote(
		"01/01/2024", "09:00", "2024-01-03", "11:00",
		models.DurationDaily, models.AdditionalFeatures{}, testSheet,
	)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}
