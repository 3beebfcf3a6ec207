package panels

import (
	"context"

	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// Dashboard returns the admin dashboard stat cards.
func (s *Service) Dashboard(ctx context.Context) (types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := s.upstream.Get(ctx, upstream.EndpointDashboard, nil, &stats); err != nil {
		return types.DashboardStats{}, err
	}
	return stats, nil
}
