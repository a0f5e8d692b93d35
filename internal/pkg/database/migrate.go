package database

import (
	"Picgram/internal/model"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// Migrate 按实体声明建表、索引和外键，不做版本化迁移
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("Schema migrated", "tables", len(model.All()))
	return nil
}
