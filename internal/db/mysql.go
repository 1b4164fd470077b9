package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"bookstore/internal/model"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users and books tables.
// Schema auto-creation is a local-practice convenience, not for production.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Book{})
}

// Reset drops the users and books tables. Used by RESET_DB=true startups.
func Reset(db *gorm.DB) error {
	return db.Migrator().DropTable(&model.Book{}, &model.User{})
}
