package models

import "time"

// QuerySpec is a validated count query over the inclusive hour range [From, To].
type QuerySpec struct {
	Scope    Scope
	ScopeID  string
	MetricID string
	From     time.Time
	To       time.Time
}

func (q *QuerySpec) Series() CounterSeries {
	return CounterSeries{Scope: q.Scope, ScopeID: q.ScopeID, MetricID: q.MetricID}
}
