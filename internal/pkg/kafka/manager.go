package kafka

import (
	"Picgram/internal/config"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type topicConsumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 canal 消费者组
type ConsumerManager struct {
	consumers []*topicConsumer
}

func NewConsumerManager(
	cfg *config.Config,
	marker DirtyPostMarker,
	invalidator FollowCountInvalidator,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	specs := []struct {
		name    string
		topic   config.KafkaTopicConsumer
		handler sarama.ConsumerGroupHandler
	}{
		{"likes", cfg.KafkaLikeConsumer, NewLikesHandler(marker)},
		{"comments", cfg.KafkaCommentConsumer, NewCommentsHandler(marker)},
		{"follows", cfg.KafkaFollowConsumer, NewFollowsHandler(invalidator)},
	}

	m := &ConsumerManager{}
	for _, spec := range specs {
		group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, spec.topic.GroupID, saramaCfg)
		if err != nil {
			m.close()
			return nil, err
		}
		m.consumers = append(m.consumers, &topicConsumer{
			name:    spec.name,
			topic:   spec.topic.Topic,
			group:   group,
			handler: spec.handler,
		})
	}
	return m, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束后关闭消费者组
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c *topicConsumer) {
			defer wg.Done()
			log.Info("kafka consumer started", "name", c.name, "topic", c.topic)
			go func() {
				for err := range c.group.Errors() {
					log.Error("kafka consumer group error", "name", c.name, "err", err)
				}
			}()
			c.run(ctx)
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	m.close()
	wg.Wait()
	return nil
}

// run 反复加入消费者组，Consume 出错时指数退避，正常返回（rebalance）后立即重入
func (c *topicConsumer) run(ctx context.Context) {
	backoff := retryInitial
	for {
		err := c.group.Consume(ctx, []string{c.topic}, c.handler)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			backoff = retryInitial
			continue
		}

		log.Error("Error from consumer", "name", c.name, "err", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, retryMax)
	}
}

func (m *ConsumerManager) close() {
	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "name", c.name, "err", err)
		}
	}
}
