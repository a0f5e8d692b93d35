package logger

import (
	"Picgram/internal/config"
	log "log/slog"
	"net"
	"os"
	"time"
)

// InitLogger 初始化全局 slog，Logstash 可达时同时上报带 trace_id 的日志
func InitLogger(cfg config.LogstashConfig) {
	log.SetDefault(log.New(&ContextHandler{newHandler(cfg)}))
}

func newHandler(cfg config.LogstashConfig) log.Handler {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	if cfg.Address == "" {
		return hStdout
	}

	conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
	if err != nil {
		log.Warn("Failed to connect to Logstash, logging to stdout only", "addr", cfg.Address, "err", err)
		return hStdout
	}

	hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
		WithAttrs([]log.Attr{
			log.String("target_index", cfg.Index),
			log.String("log_token", cfg.Token),
		})

	return &TeeHandler{
		handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
	}
}
