package models

import (
	"fmt"
	"time"
)

// RangeSegment is a contiguous inclusive run of buckets at one granularity.
// From and To are bucket starts in UTC.
type RangeSegment struct {
	Granularity Granularity
	From        time.Time
	To          time.Time
}

func (s RangeSegment) FromBucket() string {
	return s.Granularity.Bucket(s.From)
}

func (s RangeSegment) ToBucket() string {
	return s.Granularity.Bucket(s.To)
}

func (s RangeSegment) FromSortKey() string {
	return s.Granularity.SortKey(s.From)
}

func (s RangeSegment) ToSortKey() string {
	return s.Granularity.SortKey(s.To)
}

// Contains reports whether the bucket string b falls inside the segment.
// Bucket strings of one granularity sort chronologically.
func (s RangeSegment) Contains(b string) bool {
	return b >= s.FromBucket() && b <= s.ToBucket()
}

func (s RangeSegment) String() string {
	return fmt.Sprintf("%s %s..%s", s.Granularity, s.FromBucket(), s.ToBucket())
}
