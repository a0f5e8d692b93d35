package config

// Config 配置主体
type Config struct {
	DB                   DBConfig           `mapstructure:"database"`
	Redis                RedisConfig        `mapstructure:"redis"`
	MinIO                MinIOConfig        `mapstructure:"minio"`
	Kafka                KafkaConfig        `mapstructure:"kafka"`
	KafkaLikeConsumer    KafkaTopicConsumer `mapstructure:"kafka_like_consumer"`
	KafkaCommentConsumer KafkaTopicConsumer `mapstructure:"kafka_comment_consumer"`
	KafkaFollowConsumer  KafkaTopicConsumer `mapstructure:"kafka_follow_consumer"`
	Logstash             LogstashConfig     `mapstructure:"logstash"`
	Cron                 CronConfig         `mapstructure:"cron"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN             string `mapstructure:"dsn"`
	MaxIdle         int    `mapstructure:"max_idle"`
	MaxOpen         int    `mapstructure:"max_open"`
	MaxLifetime     int    `mapstructure:"max_lifetime"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	PoolSize        int    `mapstructure:"pool_size"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaTopicConsumer 单个 canal 表 topic 的消费配置
type KafkaTopicConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// LogstashConfig 远程日志配置，Address 为空时只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// CronConfig 定时任务表达式
type CronConfig struct {
	PostCounter     string `mapstructure:"post_counter"`
	PostCounterFull string `mapstructure:"post_counter_full"`
	MediaOrphan     string `mapstructure:"media_orphan"`
}
