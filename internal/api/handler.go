package api

import (
	"os"

	"github.com/sirupsen/logrus"

	"honestspace/server/internal/activity"
	"honestspace/server/internal/auth"
	"honestspace/server/internal/database"
	"honestspace/server/internal/models"
)

// Handler carries the shared dependencies of all route handlers.
type Handler struct {
	db        *database.Database
	logger    *logrus.Logger
	jwt       *auth.JWTService
	blacklist auth.Blacklist
	activity  *activity.Queue
}

func NewHandler(db *database.Database, logger *logrus.Logger, jwt *auth.JWTService, blacklist auth.Blacklist, activityQueue *activity.Queue) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		db:        db,
		logger:    logger,
		jwt:       jwt,
		blacklist: blacklist,
		activity:  activityQueue,
	}
}

// recordActivity queues an activity log entry. A full or closed queue only
// logs a warning; the request itself is unaffected.
func (h *Handler) recordActivity(userID uint, activityType, description, ip, userAgent string) {
	if h.activity == nil {
		return
	}
	entry := &models.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		IPAddress:    ip,
		UserAgent:    userAgent,
	}
	if err := h.activity.Record(entry); err != nil {
		h.logger.WithError(err).WithField("activity_type", activityType).
			Warn("Failed to queue activity entry")
	}
}
