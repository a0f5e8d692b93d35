package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// 存储层约束错误分类，调用方用 errors.Is 判断
var (
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrUniquenessViolation  = errors.New("uniqueness violation")
	ErrValidation           = errors.New("validation failed")
)

// MySQL 错误码
const (
	mysqlDupEntry        = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlDataTooLong     = 1406
	mysqlBadNull         = 1048
)

// ConstraintError 携带违反约束的表和字段
type ConstraintError struct {
	Kind  error
	Table string
	Field string
	Err   error
}

func (e *ConstraintError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Table != "" {
		b.WriteString(" on ")
		b.WriteString(e.Table)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// uniqueIndexFields 唯一索引名到字段
var uniqueIndexFields = map[string]string{
	"idx_users_username":  "username",
	"idx_users_email":     "email",
	"idx_follows_pair":    "follower_id,following_id",
	"idx_likes_user_post": "user_id,post_id",
	"idx_media_post_id":   "post_id",
}

var columnNamer = schema.NamingStrategy{}

var (
	mysqlDupKeyRe   = regexp.MustCompile("for key '(?:[^'.]+\\.)?([^']+)'")
	mysqlFKColumnRe = regexp.MustCompile("FOREIGN KEY \\(`([^`]+)`\\)")
	mysqlColumnRe   = regexp.MustCompile("[Cc]olumn '([^']+)'")
	sqliteColumnRe  = regexp.MustCompile(`constraint failed: (.+)$`)
)

// translateError 把驱动错误和校验错误映射到约束错误分类，其它错误原样返回
func translateError(table string, err error) error {
	if err == nil {
		return nil
	}

	var cErr *ConstraintError
	if errors.As(err, &cErr) {
		return err
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		first := vErrs[0]
		return &ConstraintError{
			Kind:  ErrValidation,
			Table: table,
			Field: columnNamer.ColumnName(table, first.StructField()),
			Err:   fmt.Errorf("rule [%s] failed", first.Tag()),
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return &ConstraintError{Kind: ErrUniquenessViolation, Table: table, Field: uniqueField(firstMatch(mysqlDupKeyRe, myErr.Message)), Err: err}
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return &ConstraintError{Kind: ErrReferentialIntegrity, Table: table, Field: firstMatch(mysqlFKColumnRe, myErr.Message), Err: err}
		case mysqlDataTooLong, mysqlBadNull:
			return &ConstraintError{Kind: ErrValidation, Table: table, Field: firstMatch(mysqlColumnRe, myErr.Message), Err: err}
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Kind: ErrUniquenessViolation, Table: table, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Kind: ErrReferentialIntegrity, Table: table, Err: err}
	}

	// sqlite: "UNIQUE constraint failed: users.username" / "FOREIGN KEY constraint failed"
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &ConstraintError{Kind: ErrUniquenessViolation, Table: table, Field: sqliteColumns(msg), Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ConstraintError{Kind: ErrReferentialIntegrity, Table: table, Err: err}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &ConstraintError{Kind: ErrValidation, Table: table, Field: sqliteColumns(msg), Err: err}
	}
	return err
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func uniqueField(index string) string {
	if f, ok := uniqueIndexFields[index]; ok {
		return f
	}
	return index
}

// sqliteColumns 把 "t.a, t.b" 转为 "a,b"
func sqliteColumns(msg string) string {
	cols := firstMatch(sqliteColumnRe, msg)
	if cols == "" {
		return ""
	}
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if dot := strings.LastIndexByte(p, '.'); dot >= 0 {
			p = p[dot+1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, ",")
}
