package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingStatsApply(t *testing.T) {
	stats := RatingStats{
		AverageRating: 4.0,
		TotalRatings:  3,
		RatingDistribution: RatingDistribution{
			Three: 1, Four: 1, Five: 1,
		},
	}

	next, err := stats.Apply(5)
	require.NoError(t, err)

	assert.Equal(t, int64(4), next.TotalRatings)
	assert.Equal(t, 4.3, next.AverageRating) // (4.0*3 + 5) / 4 = 4.25, rounded half up
	assert.Equal(t, int64(2), next.RatingDistribution.Five)

	// original is untouched
	assert.Equal(t, int64(3), stats.TotalRatings)
	assert.Equal(t, 4.0, stats.AverageRating)
}

func TestRatingStatsApply_FirstRating(t *testing.T) {
	next, err := RatingStats{}.Apply(5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), next.TotalRatings)
	assert.Equal(t, 5.0, next.AverageRating)
	assert.Equal(t, int64(1), next.RatingDistribution.Five)
}

// The distribution total must always equal the rating count, no matter
// the order ratings arrive in.
func TestRatingStatsApply_DistributionStaysInSync(t *testing.T) {
	stats := RatingStats{}
	for _, rating := range []int{5, 1, 3, 3, 4, 2, 5, 5, 1} {
		var err error
		stats, err = stats.Apply(rating)
		require.NoError(t, err)
		assert.Equal(t, stats.TotalRatings, stats.RatingDistribution.Total())
	}

	assert.Equal(t, int64(9), stats.TotalRatings)
	assert.Equal(t, int64(2), stats.RatingDistribution.Count(1))
	assert.Equal(t, int64(3), stats.RatingDistribution.Count(5))
}

func TestRatingStatsApply_OutOfRange(t *testing.T) {
	stats := RatingStats{AverageRating: 4.0, TotalRatings: 2}

	for _, rating := range []int{0, 6, -1} {
		next, err := stats.Apply(rating)
		require.Error(t, err)
		assert.Equal(t, stats, next, "stats must be unchanged on rejection")
	}
}

func TestPricingSheetValid(t *testing.T) {
	sheet := PricingSheet{HourlyRate: 10, DailyRate: 100, WeeklyRate: 500, MonthlyRate: 1500}
	assert.True(t, sheet.Valid())

	sheet.WeeklyRate = -1
	assert.False(t, sheet.Valid())

	sheet.WeeklyRate = math.NaN()
	assert.False(t, sheet.Valid())

	sheet.WeeklyRate = math.Inf(1)
	assert.False(t, sheet.Valid())
}

func TestBookingIsTerminal(t *testing.T) {
	booking := &Booking{Status: BookingStatusPending}
	assert.False(t, booking.IsTerminal())

	booking.Status = BookingStatusApproved
	assert.False(t, booking.IsTerminal())

	booking.Status = BookingStatusCancelled
	assert.True(t, booking.IsTerminal())

	booking.Status = BookingStatusReturned
	assert.True(t, booking.IsTerminal())
}
