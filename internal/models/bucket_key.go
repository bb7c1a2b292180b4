package models

// CounterSeries addresses every bucket of one metric for one scope entity.
type CounterSeries struct {
	Scope    Scope
	ScopeID  string
	MetricID string
}

// PartitionKey renders "<TAG>#<scopeId>#MET#<metricId>".
func (s CounterSeries) PartitionKey() string {
	return s.Scope.Tag() + "#" + s.ScopeID + "#MET#" + s.MetricID
}

// BucketKey identifies one counter record. It is comparable and used directly as a map key.
type BucketKey struct {
	Scope       Scope
	ScopeID     string
	MetricID    string
	Granularity Granularity
	Bucket      string
}

func (k BucketKey) Series() CounterSeries {
	return CounterSeries{Scope: k.Scope, ScopeID: k.ScopeID, MetricID: k.MetricID}
}

func (k BucketKey) PartitionKey() string {
	return k.Series().PartitionKey()
}

// SortKey renders "D#<yyyy-mm-dd>" or "H#<yyyy-mm-ddThh>".
func (k BucketKey) SortKey() string {
	return k.Granularity.Prefix() + "#" + k.Bucket
}

func (k BucketKey) String() string {
	return k.PartitionKey() + "/" + k.SortKey()
}
