package kafka

import (
	"Picgram/internal/pkg/util"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

var (
	ErrMalformed     = errors.New("malformed canal message")
	ErrTableMismatch = errors.New("table name not match")
	ErrEmptyData     = errors.New("data is empty")
)

// CanalMessage Canal 推送到 Kafka 的 binlog JSON
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 变更后的行
	Data []map[string]interface{} `json:"data"`

	// Old UPDATE 时被修改字段的旧值，与 Data 按下标对应
	Old []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// ToCanalMessage 解析 kafka 消息并校验表名
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if canalMsg.Table != tableName {
		return nil, ErrTableMismatch
	}

	if len(canalMsg.Data) == 0 {
		return nil, ErrEmptyData
	}

	return &canalMsg, nil
}

// Uint64Field 取行中的 id 字段，canal 中数字以字符串给出
func Uint64Field(row map[string]interface{}, field string) (uint64, bool) {
	val, ok := row[field]
	if !ok || val == nil {
		return 0, false
	}
	return util.AnyToUint64(val)
}

// ChangedUint64Field UPDATE 消息中字段的旧值，未修改时返回 false
func (m *CanalMessage) ChangedUint64Field(i int, field string) (uint64, bool) {
	if i >= len(m.Old) || m.Old[i] == nil {
		return 0, false
	}
	return Uint64Field(m.Old[i], field)
}
