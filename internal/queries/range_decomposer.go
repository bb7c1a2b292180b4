package queries

import (
	"errors"
	"fmt"
	"time"

	"usage-metrics/internal/models"
)

var ErrInvalidRange = errors.New("invalid range: from is after to")

// Decompose covers the inclusive hour range [from, to] with the fewest segments.
// A boundary day covered from hour 00 through 23 is read from its daily bucket;
// a partially covered boundary day is read hour by hour. Full days in between
// are always read daily.
//
// Example:
//
//	Decompose(2024-01-15T05, 2024-01-20T18) =
//	  hourly 2024-01-15T05..2024-01-15T23
//	  daily  2024-01-16..2024-01-19
//	  hourly 2024-01-20T00..2024-01-20T18
//
// Segments are ordered, pairwise disjoint, and their union is exactly the input.
// Inputs are truncated to the hour in UTC.
func Decompose(from, to time.Time) ([]models.RangeSegment, error) {
	from = models.GranularityHourly.Truncate(from)
	to = models.GranularityHourly.Truncate(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(models.HourlyBucketLayout), to.Format(models.HourlyBucketLayout))
	}

	fromDay := models.GranularityDaily.Truncate(from)
	toDay := models.GranularityDaily.Truncate(to)
	leadFull := from.Hour() == 0
	trailFull := to.Hour() == 23

	if fromDay.Equal(toDay) {
		if leadFull && trailFull {
			return []models.RangeSegment{daily(fromDay, fromDay)}, nil
		}
		return []models.RangeSegment{hourly(from, to)}, nil
	}

	segments := make([]models.RangeSegment, 0, 3)

	dailyFrom := fromDay
	if !leadFull {
		segments = append(segments, hourly(from, lastHour(fromDay)))
		dailyFrom = fromDay.AddDate(0, 0, 1)
	}

	dailyTo := toDay
	if !trailFull {
		dailyTo = toDay.AddDate(0, 0, -1)
	}

	if !dailyFrom.After(dailyTo) {
		segments = append(segments, daily(dailyFrom, dailyTo))
	}

	if !trailFull {
		segments = append(segments, hourly(toDay, to))
	}

	return segments, nil
}

func hourly(from, to time.Time) models.RangeSegment {
	return models.RangeSegment{Granularity: models.GranularityHourly, From: from, To: to}
}

func daily(from, to time.Time) models.RangeSegment {
	return models.RangeSegment{Granularity: models.GranularityDaily, From: from, To: to}
}

func lastHour(day time.Time) time.Time {
	return day.Add(23 * time.Hour)
}
