package job

import (
	"Picgram/internal/pkg/consts"
	"Picgram/internal/pkg/redis"
	"Picgram/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"time"
)

const reconcileChunk = 500

// PostCounterJob 处理 kafka 消费者记下的待校正帖子
type PostCounterJob struct {
	reconciler CounterReconciler
}

func NewPostCounterJob(reconciler CounterReconciler) *PostCounterJob {
	return &PostCounterJob{reconciler: reconciler}
}

func (s *PostCounterJob) Run() {
	ctx, traceID := newJobContext("counter")
	withLock(ctx, consts.PostCounterLock, traceID, 5*time.Minute, func() {
		s.drain(ctx)
	})
}

// drain 把待校正集合并入 processing 集合再处理，上一轮失败留下的 processing 集合不会被覆盖，
// 任何一步出错都保留 processing 集合等下一轮
func (s *PostCounterJob) drain(ctx context.Context) {
	processingKey := consts.PostCounterDirtyKey + consts.ProcessingSuffix

	if err := redis.MergeSetInto(ctx, processingKey, consts.PostCounterDirtyKey); err != nil {
		if !errors.Is(err, redis.ErrNotInitialized) {
			log.ErrorContext(ctx, "move post dirty set error", "err", err)
		}
		return
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post processing set error", "err", err)
		return
	}
	if len(members) == 0 {
		return
	}

	postIDs, invalid := util.ParseUint64s(members)
	if len(invalid) > 0 {
		log.WarnContext(ctx, "skip invalid post ids in dirty set", "members", invalid)
	}

	var fixed int64
	for start := 0; start < len(postIDs); start += reconcileChunk {
		end := min(start+reconcileChunk, len(postIDs))
		n, err := s.reconciler.ReconcileCounters(ctx, postIDs[start:end])
		if err != nil {
			log.ErrorContext(ctx, "reconcile post counters error", "err", err)
			return
		}
		fixed += n
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete post processing set error", "err", err)
		return
	}

	log.InfoContext(ctx, "sync post counters success", "post_count", len(postIDs), "rows", fixed)
}
