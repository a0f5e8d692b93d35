package job

import (
	"Picgram/internal/pkg/consts"
	log "log/slog"
	"time"
)

// PostCounterFullJob 全表比对计数与真实行数
type PostCounterFullJob struct {
	reconciler CounterReconciler
}

func NewPostCounterFullJob(reconciler CounterReconciler) *PostCounterFullJob {
	return &PostCounterFullJob{reconciler: reconciler}
}

func (s *PostCounterFullJob) Run() {
	ctx, traceID := newJobContext("counter-full")
	withLock(ctx, consts.PostCounterFullLock, traceID, 30*time.Minute, func() {
		start := time.Now()
		fixed, err := s.reconciler.ReconcileAllCounters(ctx)
		if err != nil {
			log.ErrorContext(ctx, "full reconcile post counters error", "err", err)
			return
		}
		log.InfoContext(ctx, "full reconcile post counters finished", "fixed", fixed, "cost", time.Since(start))
	})
}
