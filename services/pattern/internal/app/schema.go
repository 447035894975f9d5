package app

import (
	"pattern-share/pkg/logger"
	"pattern-share/services/pattern/internal/model"

	"gorm.io/gorm"
)

// CheckSchema reports whether the patterns table exists and logs how to
// create it when it does not. The service never migrates on its own.
func CheckSchema(db *gorm.DB, log *logger.Logger) bool {
	if db.Migrator().HasTable(&model.PatternModel{}) {
		return true
	}
	log.Warn("Table %q is missing, every pattern route will fail until migrations run (go run ./cmd/migrate up)", model.PatternModel{}.TableName())
	return false
}
