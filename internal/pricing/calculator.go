// Package pricing holds the duration and cost math for a rental. All
// rounding rules live here so create-time and return-time quotes can
// never drift apart.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"steeraway/internal/models"
	"steeraway/internal/utils"
)

const dateLayout = "2006-01-02"

// Window is the elapsed rental time split into whole days and the
// remaining hours, each already rounded per the billing rules.
type Window struct {
	Days  int
	Hours int
}

// Quote is a fully computed price for one rental window.
type Quote struct {
	BaseCost        float64                `json:"base_cost"`
	AdditionalCosts models.AdditionalCosts `json:"additional_costs"`
	TotalCost       float64                `json:"total_cost"`
}

// NormalizeClock accepts "H:m" or "HH:mm" and returns a zero-padded
// "HH:mm" string.
func NormalizeClock(clock string) (string, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return "", utils.InvalidInputError("invalid time format: " + clock)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return "", utils.InvalidInputError("invalid time format: " + clock)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return "", utils.InvalidInputError("invalid time format: " + clock)
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// CombineDateTime combines a "YYYY-MM-DD" date and a clock string into
// a single instant (UTC).
func CombineDateTime(date, clock string) (time.Time, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(dateLayout+"T15:04", date+"T"+normalized)
	if err != nil {
		return time.Time{}, utils.InvalidInputError("invalid date/time format: " + date + " " + clock)
	}

	return t, nil
}

// Elapsed computes the rental window between two date+time pairs.
// Whole days are floored, leftover hours are ceiled, and both are
// clamped to zero so an end before the start never yields a negative
// window.
func Elapsed(startDate, startTime, endDate, endTime string) (Window, error) {
	start, err := CombineDateTime(startDate, startTime)
	if err != nil {
		return Window{}, err
	}
	end, err := CombineDateTime(endDate, endTime)
	if err != nil {
		return Window{}, err
	}

	totalHours := end.Sub(start).Hours()
	days := int(math.Floor(totalHours / 24))
	hours := int(math.Ceil(math.Mod(totalHours, 24)))

	if days < 0 {
		days = 0
	}
	if hours < 0 {
		hours = 0
	}

	return Window{Days: days, Hours: hours}, nil
}

// RentalCost prices a window against a car's rate sheet for the given
// duration class. Any partial unit rounds up, and the minimum charge is
// one full unit of the class.
func RentalCost(w Window, class models.DurationClass, sheet models.PricingSheet) (float64, error) {
	if !sheet.Valid() {
		return 0, utils.InvalidConfigurationError("invalid pricing rates")
	}

	var cost float64
	switch class {
	case models.DurationHourly:
		totalHours := w.Days*24 + w.Hours
		if totalHours < 1 {
			totalHours = 1
		}
		cost = float64(totalHours) * sheet.HourlyRate
	case models.DurationDaily:
		cost = float64(billableDays(w)) * sheet.DailyRate
	case models.DurationWeekly:
		weeks := int(math.Ceil(float64(billableDays(w)) / 7))
		if weeks < 1 {
			weeks = 1
		}
		cost = float64(weeks) * sheet.WeeklyRate
	case models.DurationMonthly:
		months := int(math.Ceil(float64(billableDays(w)) / 30))
		if months < 1 {
			months = 1
		}
		cost = float64(months) * sheet.MonthlyRate
	default:
		return 0, utils.InvalidInputError("invalid duration type: " + string(class))
	}

	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return 0, utils.InvalidConfigurationError("calculated rental cost is not a valid amount")
	}

	return cost, nil
}

// billableDays rounds any partial day up to a full day, with a one-day
// minimum.
func billableDays(w Window) int {
	days := w.Days
	if w.Hours > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// AddOnCosts prices the optional features against the rate sheet. A
// feature that is not requested costs nothing.
func AddOnCosts(features models.AdditionalFeatures, sheet models.PricingSheet) models.AdditionalCosts {
	costs := models.AdditionalCosts{}
	if features.Insurance {
		costs.InsuranceCost = sheet.InsurancePrice
	}
	if features.GPS {
		costs.GPSCost = sheet.GPSPrice
	}
	if features.ChildSeat {
		costs.ChildSeatCost = sheet.ChildSeatPrice
	}
	return costs
}

// CalculateQuote prices a full rental: base cost for the window at the
// requested duration class plus flat surcharges for the selected
// features.
func CalculateQuote(startDate, startTime, endDate, endTime string, class models.DurationClass, features models.AdditionalFeatures, sheet models.PricingSheet) (*Quote, error) {
	window, err := Elapsed(startDate, startTime, endDate, endTime)
	if err != nil {
		return nil, err
	}

	baseCost, err := RentalCost(window, class, sheet)
	if err != nil {
		return nil, err
	}

	additional := AddOnCosts(features, sheet)
	total := baseCost + additional.Sum()
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return nil, utils.InvalidConfigurationError("calculated total cost is not a valid amount")
	}

	return &Quote{
		BaseCost:        baseCost,
		AdditionalCosts: additional,
		TotalCost:       total,
	}, nil
}
