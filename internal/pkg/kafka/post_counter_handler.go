package kafka

import (
	"Picgram/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// DirtyPostMarker 记录计数需要校正的帖子
type DirtyPostMarker interface {
	MarkCountersDirty(ctx context.Context, postIDs ...uint64) error
}

// PostCounterHandler 消费 likes/comments 表的 binlog，把受影响的帖子记入待校正集合
type PostCounterHandler struct {
	table  string
	marker DirtyPostMarker
}

func NewLikesHandler(marker DirtyPostMarker) *PostCounterHandler {
	return &PostCounterHandler{table: "likes", marker: marker}
}

func NewCommentsHandler(marker DirtyPostMarker) *PostCounterHandler {
	return &PostCounterHandler{table: "comments", marker: marker}
}

func (s *PostCounterHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post counter consumer setup", "table", s.table)
	return nil
}

func (s *PostCounterHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post counter consumer cleanup", "table", s.table)
	return nil
}

func (s *PostCounterHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *PostCounterHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, s.table)
	if err != nil {
		return err
	}

	postIDs := make([]uint64, 0, len(canalMsg.Data))
	for i, row := range canalMsg.Data {
		postID, ok := Uint64Field(row, "post_id")
		if !ok {
			log.WarnContext(ctx, "canal row without post_id", "table", s.table)
			continue
		}
		switch canalMsg.Type {
		case consts.CanalInsert, consts.CanalDelete:
			postIDs = append(postIDs, postID)
		case consts.CanalUpdate:
			// 只有 post_id 变化才影响计数
			if oldID, changed := canalMsg.ChangedUint64Field(i, "post_id"); changed && oldID != postID {
				postIDs = append(postIDs, oldID, postID)
			}
		}
	}
	if len(postIDs) == 0 {
		return nil
	}

	if err = s.marker.MarkCountersDirty(ctx, postIDs...); err != nil {
		return err
	}
	log.DebugContext(ctx, "post counters marked dirty", "table", s.table, "type", canalMsg.Type, "post_ids", postIDs)
	return nil
}
