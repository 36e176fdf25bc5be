package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/repositories"

	"gorm.io/gorm"
)

// CleanupWorker периодически удаляет отработанный мусор:
// погашенные и истекшие коды подтверждения, просроченные refresh токены,
// вакансии с прошедшим дедлайном.
type CleanupWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewCleanupWorker(db *gorm.DB, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &CleanupWorker{db: db, interval: interval}
}

// Start запускает фоновую очистку
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// первый проход сразу при старте
	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CleanupWorker) sweep() {
	now := time.Now()

	deleted, err := repositories.NewOTPRepository(w.db).DeleteStale(now)
	if err != nil {
		logger.Error("failed to delete stale otp codes", "error", err)
	} else if deleted > 0 {
		logger.Info("deleted stale otp codes", "count", deleted)
	}

	if err := repositories.NewUserRepository(w.db).CleanExpiredRefreshTokens(); err != nil {
		logger.Error("failed to clean expired refresh tokens", "error", err)
	}

	closed, err := repositories.NewJobRepository(w.db).DeactivateExpired(now)
	if err != nil {
		logger.Error("failed to deactivate expired jobs", "error", err)
	} else if closed > 0 {
		logger.Info("deactivated expired jobs", "count", closed)
	}
}
