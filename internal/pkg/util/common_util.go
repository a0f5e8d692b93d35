package util

import (
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Ptr 返回值的指针
func Ptr[T any](v T) *T {
	return &v
}

// NormalizePage 修正分页参数，limit 落在 [1, MaxPageSize]，offset 不小于 0
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ParseUint64s 解析十进制 id，无法解析的原样放入 invalid
func ParseUint64s(strs []string) (ids []uint64, invalid []string) {
	ids = make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		ids = append(ids, v)
	}
	return ids, invalid
}

// AnyToUint64 解析 canal 消息里以字符串或数字形式出现的 id
func AnyToUint64(v any) (uint64, bool) {
	switch val := v.(type) {
	case string:
		n, err := strconv.ParseUint(val, 10, 64)
		return n, err == nil
	case float64:
		if val < 0 {
			return 0, false
		}
		return uint64(val), true
	case int64:
		if val < 0 {
			return 0, false
		}
		return uint64(val), true
	case uint64:
		return val, true
	default:
		return 0, false
	}
}
