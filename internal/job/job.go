package job

import (
	"Picgram/internal/pkg/logger"
	"Picgram/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// CounterReconciler 按真实行数校正帖子计数
type CounterReconciler interface {
	ReconcileCounters(ctx context.Context, ids []uint64) (int64, error)
	ReconcileAllCounters(ctx context.Context) (int64, error)
}

// OrphanCleaner 回收没有 media 行引用的对象
type OrphanCleaner interface {
	CleanOrphanObjects(ctx context.Context, minAge time.Duration) (int, error)
}

func newJobContext(prefix string) (context.Context, string) {
	traceID := "job-" + prefix + "-" + uuid.NewString()
	return logger.WithTraceID(context.Background(), traceID), traceID
}

// withLock 多实例部署时只让一个实例执行；未启用 redis 时直接执行
func withLock(ctx context.Context, key, owner string, ttl time.Duration, fn func()) {
	ok, err := redis.TryLock(ctx, key, owner, ttl, 1)
	switch {
	case errors.Is(err, redis.ErrNotInitialized):
		fn()
		return
	case err != nil:
		log.ErrorContext(ctx, "acquire job lock error", "key", key, "err", err)
		return
	case !ok:
		log.InfoContext(ctx, "job lock held by another instance", "key", key)
		return
	}
	defer redis.UnLock(ctx, key, owner)
	fn()
}
