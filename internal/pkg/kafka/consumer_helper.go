package kafka

import (
	"Picgram/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	retryInitial = 100 * time.Millisecond
	retryMax     = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 攒批拉取消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部完成后提交最后一条的 offset
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			runWithRetry(session.Context(), m, logic)
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 && session.Context().Err() == nil {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}

// runWithRetry 失败时指数退避重试，直到成功或 ctx 结束；无法解析的消息直接跳过
func runWithRetry(ctx context.Context, msg *sarama.ConsumerMessage, logic LogicFunc) {
	traceID := fmt.Sprintf("kafka-%s-%d-%d", msg.Topic, msg.Partition, msg.Offset)
	ctx = logger.WithTraceID(ctx, traceID)

	interval := retryInitial
	for {
		err := logic(ctx, msg)
		if err == nil {
			return
		}
		if isPoisonMessage(err) {
			log.WarnContext(ctx, "skip unprocessable canal message", "err", err)
			return
		}

		log.ErrorContext(ctx, "process message error", "err", err, "retry_in", interval)
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		interval *= 2
		if interval > retryMax {
			interval = retryMax
		}
	}
}

func isPoisonMessage(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrTableMismatch) || errors.Is(err, ErrEmptyData)
}
