package job

import (
	"Picgram/internal/pkg/consts"
	log "log/slog"
	"time"
)

// MediaOrphanJob 级联删除 media 行后对象仍留在桶里，由该任务回收
type MediaOrphanJob struct {
	cleaner OrphanCleaner
	minAge  time.Duration
}

func NewMediaOrphanJob(cleaner OrphanCleaner) *MediaOrphanJob {
	return &MediaOrphanJob{cleaner: cleaner, minAge: time.Hour}
}

func (s *MediaOrphanJob) Run() {
	ctx, traceID := newJobContext("media")
	log.InfoContext(ctx, "start media orphan job")
	withLock(ctx, consts.MediaOrphanLock, traceID, time.Hour, func() {
		count, err := s.cleaner.CleanOrphanObjects(ctx, s.minAge)
		if err != nil {
			log.ErrorContext(ctx, "media orphan job failed", "cleaned_count", count, "err", err)
			return
		}
		if count > 0 {
			log.InfoContext(ctx, "media orphan job finished", "cleaned_count", count)
		}
	})
}
