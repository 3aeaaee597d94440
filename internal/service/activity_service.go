package service

import (
	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/pkg/logger"

	"go.uber.org/zap"
)

// ActivityService 尽力而为的审计日志。写入异步进行，任何失败只记日志，
// 绝不打断主请求。
type ActivityService struct {
	Repo *repository.ActivityLogRepository
}

func NewActivityService(repo *repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{Repo: repo}
}

func (s *ActivityService) Record(userID uint, action, entity, entityID, detail string) {
	if s == nil || s.Repo == nil {
		return
	}
	entry := &model.ActivityLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	go func() {
		if err := s.Repo.Create(entry); err != nil {
			logger.Log.Warn("activity log write failed",
				zap.String("action", action),
				zap.String("entity", entity),
				zap.Error(err))
		}
	}()
}

func (s *ActivityService) List(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	return s.Repo.List(userID, page, limit)
}
