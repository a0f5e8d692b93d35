package kafka

import (
	"Picgram/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// FollowCountInvalidator 失效用户的关注数缓存
type FollowCountInvalidator interface {
	InvalidateFollowCounts(ctx context.Context, userIds ...uint64)
}

type FollowsHandler struct {
	invalidator FollowCountInvalidator
}

func NewFollowsHandler(invalidator FollowCountInvalidator) *FollowsHandler {
	return &FollowsHandler{invalidator: invalidator}
}

func (s *FollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer setup")
	return nil
}

func (s *FollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer cleanup")
	return nil
}

func (s *FollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *FollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "follows")
	if err != nil {
		return err
	}
	if canalMsg.Type != consts.CanalInsert && canalMsg.Type != consts.CanalDelete {
		return nil
	}

	seen := make(map[uint64]struct{})
	userIDs := make([]uint64, 0, len(canalMsg.Data)*2)
	for _, row := range canalMsg.Data {
		for _, field := range []string{"follower_id", "following_id"} {
			id, ok := Uint64Field(row, field)
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) > 0 {
		s.invalidator.InvalidateFollowCounts(ctx, userIDs...)
	}
	return nil
}
