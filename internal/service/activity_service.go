package service

import (
	"context"

	"github.com/d60-Lab/blog-platform/internal/repository"
)

// ActivityService reads the append-only activity log. Writes happen inside
// the comment and reaction transactions, never through this service.
type ActivityService interface {
	List(ctx context.Context, userID *string, page, pageSize int) ([]*ActivityView, error)
}

type activityService struct {
	activities repository.ActivityRepository
}

func NewActivityService(activities repository.ActivityRepository) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) List(ctx context.Context, userID *string, page, pageSize int) ([]*ActivityView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	rows, err := s.activities.List(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]*ActivityView, len(rows))
	for i, a := range rows {
		out[i] = activityView(a)
	}
	return out, nil
}
