package aggregators

import (
	"usage-metrics/internal/models"
)

//go:generate mockgen -source=bucket_key_mapper.go -destination=./mocks/bucket_key_mapper_mock.go -package=mocks
type BucketKeyMapper interface {
	// BucketKeys returns the counters an event increments, in the order
	// workspace hourly, workspace daily, then user hourly, user daily when the
	// event carries a user.
	BucketKeys(event *models.UpdateEvent) []models.BucketKey
}

type bucketKeyMapper struct {
	granularities []models.Granularity
}

func NewBucketKeyMapper() BucketKeyMapper {
	return &bucketKeyMapper{
		granularities: []models.Granularity{models.GranularityHourly, models.GranularityDaily},
	}
}

func (m *bucketKeyMapper) BucketKeys(event *models.UpdateEvent) []models.BucketKey {
	keys := make([]models.BucketKey, 0, 2*len(m.granularities))
	keys = m.appendScope(keys, models.ScopeWorkspace, event.WorkspaceID, event)
	if event.HasUser() {
		keys = m.appendScope(keys, models.ScopeUser, event.UserID, event)
	}
	return keys
}

func (m *bucketKeyMapper) appendScope(keys []models.BucketKey, scope models.Scope, scopeID string, event *models.UpdateEvent) []models.BucketKey {
	for _, g := range m.granularities {
		keys = append(keys, models.BucketKey{
			Scope:       scope,
			ScopeID:     scopeID,
			MetricID:    event.MetricID,
			Granularity: g,
			Bucket:      g.Bucket(event.Timestamp),
		})
	}
	return keys
}
