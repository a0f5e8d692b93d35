// Package erd 从 GORM 模型声明生成实体关系图，只在显式调用时渲染
package erd

import (
	"fmt"
	"sync"

	"gorm.io/gorm/schema"
)

type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	ForeignKey bool
	Unique     bool
	Nullable   bool
}

type Table struct {
	Name    string
	Columns []Column
}

// Relation 子表 From.FromColumn 引用父表 To.ToColumn，OneToOne 表示外键列单独唯一
type Relation struct {
	From       string
	FromColumn string
	To         string
	ToColumn   string
	OneToOne   bool
}

type Diagram struct {
	Tables    []Table
	Relations []Relation
}

// Build 解析模型，表按传入顺序排列
func Build(models ...any) (*Diagram, error) {
	cache := &sync.Map{}
	naming := schema.NamingStrategy{}
	d := &Diagram{}

	for _, m := range models {
		s, err := schema.Parse(m, cache, naming)
		if err != nil {
			return nil, fmt.Errorf("parse %T: %w", m, err)
		}

		fkColumns := make(map[string]struct{})
		for _, rel := range s.Relationships.BelongsTo {
			for _, ref := range rel.References {
				if ref.ForeignKey == nil || ref.PrimaryKey == nil {
					continue
				}
				fkColumns[ref.ForeignKey.DBName] = struct{}{}
				d.Relations = append(d.Relations, Relation{
					From:       s.Table,
					FromColumn: ref.ForeignKey.DBName,
					To:         rel.FieldSchema.Table,
					ToColumn:   ref.PrimaryKey.DBName,
				})
			}
		}

		uniqueIndexSize := make(map[string]int)
		for _, name := range s.DBNames {
			if idx := s.FieldsByDBName[name].TagSettings["UNIQUEINDEX"]; idx != "" {
				uniqueIndexSize[idx]++
			}
		}

		table := Table{Name: s.Table}
		soloUnique := make(map[string]bool)
		for _, name := range s.DBNames {
			f := s.FieldsByDBName[name]
			idx := f.TagSettings["UNIQUEINDEX"]
			_, isFK := fkColumns[name]
			table.Columns = append(table.Columns, Column{
				Name:       name,
				Type:       columnType(f),
				PrimaryKey: f.PrimaryKey,
				ForeignKey: isFK,
				Unique:     f.Unique || idx != "",
				Nullable:   !f.NotNull && !f.PrimaryKey,
			})
			soloUnique[name] = f.Unique || (idx != "" && uniqueIndexSize[idx] == 1)
		}
		d.Tables = append(d.Tables, table)

		for i := range d.Relations {
			r := &d.Relations[i]
			if r.From == s.Table && soloUnique[r.FromColumn] {
				r.OneToOne = true
			}
		}
	}
	return d, nil
}

func columnType(f *schema.Field) string {
	if t := f.TagSettings["TYPE"]; t != "" {
		return t
	}
	switch f.DataType {
	case schema.Uint:
		return "bigint"
	case schema.Int:
		return "int"
	case schema.Time:
		return "datetime"
	case schema.Bool:
		return "boolean"
	case schema.Float:
		return "double"
	default:
		return "varchar"
	}
}
