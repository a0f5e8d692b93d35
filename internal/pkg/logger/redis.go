package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook go-redis 钩子，只记录失败和超过 SlowThreshold 的命令
type RedisLoggerHook struct {
	SlowThreshold time.Duration
}

func NewRedisLogger(slowThreshold time.Duration) *RedisLoggerHook {
	if slowThreshold <= 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &RedisLoggerHook{SlowThreshold: slowThreshold}
}

// 参数里带凭据的命令
var redactedCommands = map[string]struct{}{
	"auth":  {},
	"hello": {},
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error", "addr", addr, "latency", time.Since(start), "err", err)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		s.report(ctx, "Redis", time.Since(start), err,
			log.String("command", cmd.Name()),
			log.String("args", commandArgs(cmd)),
		)
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		s.report(ctx, "Redis Pipeline", time.Since(start), err, log.Int("cmd_count", len(cmds)))
		return err
	}
}

func (s *RedisLoggerHook) report(ctx context.Context, prefix string, elapsed time.Duration, err error, attrs ...any) {
	attrs = append(attrs, log.Duration("latency", elapsed))
	switch {
	case err != nil && !ignorableRedisError(err):
		log.ErrorContext(ctx, prefix+" Error", append(attrs, log.Any("err", err))...)
	case err == nil && elapsed > s.SlowThreshold:
		log.WarnContext(ctx, prefix+" Slow", attrs...)
	}
}

func commandArgs(cmd redis.Cmder) string {
	if _, ok := redactedCommands[cmd.Name()]; ok {
		return "[PROTECTED]"
	}
	return fmt.Sprint(cmd.Args())
}

// 缓存未命中、不存在的 key 以及旧版本服务端不支持 CLIENT SETINFO 都属于正常返回
func ignorableRedisError(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	msg := err.Error()
	return msg == "ERR no such key" || strings.Contains(strings.ToLower(msg), "setinfo")
}
