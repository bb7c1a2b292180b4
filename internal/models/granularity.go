package models

import (
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
)

const (
	HourlyBucketLayout = "2006-01-02T15"
	DailyBucketLayout  = "2006-01-02"
)

func (g Granularity) Valid() bool {
	return g == GranularityHourly || g == GranularityDaily
}

// Prefix is the persisted sort key prefix of the granularity.
func (g Granularity) Prefix() string {
	switch g {
	case GranularityHourly:
		return "H"
	case GranularityDaily:
		return "D"
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

func (g Granularity) Layout() string {
	switch g {
	case GranularityHourly:
		return HourlyBucketLayout
	case GranularityDaily:
		return DailyBucketLayout
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

// Truncate returns the start of the bucket containing t, in UTC.
func (g Granularity) Truncate(t time.Time) time.Time {
	utc := t.UTC()

	switch g {
	case GranularityHourly:
		return utc.Truncate(time.Hour)
	case GranularityDaily:
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

// Bucket renders the bucket containing t, e.g. "2024-01-15T14" or "2024-01-15".
func (g Granularity) Bucket(t time.Time) string {
	return g.Truncate(t).Format(g.Layout())
}

// SortKey renders the persisted sort key of the bucket containing t.
func (g Granularity) SortKey(t time.Time) string {
	return g.Prefix() + "#" + g.Bucket(t)
}
