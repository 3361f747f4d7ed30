package squery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the gorm handle used to back Backend.ConfigGet and
// Backend.UserPrefixGet.
type Store struct {
	db *gorm.DB
}

// Connect opens (creating if necessary) the sqlite database at dsn
// and runs migrations, mirroring termfx-morfx's Connect/Migrate split
// for its own sqlite-backed store.
func Connect(dsn string, debug bool) (*Store, error) {
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", dsn, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate runs the store's schema migrations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ConfigEntry{}, &UserPrefix{})
}

// ConfigGet implements the lookup half of Backend.ConfigGet.
func (s *Store) ConfigGet(key string) (string, bool) {
	var entry ConfigEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		return "", false
	}
	return entry.Value, entry.Value != ""
}

// ConfigSet upserts a configuration value, e.g. to register a saved
// squery under "squery.<name>".
func (s *Store) ConfigSet(key, value string) error {
	entry := ConfigEntry{Key: key, Value: value}
	return s.db.Save(&entry).Error
}

// UserPrefixGet implements Backend.UserPrefixGet.
func (s *Store) UserPrefixGet(name string) (string, bool) {
	var prefix UserPrefix
	if err := s.db.First(&prefix, "name = ?", name).Error; err != nil {
		return "", false
	}
	return prefix.Name, true
}

// RegisterUserPrefix adds name as a recognized user-defined header.
func (s *Store) RegisterUserPrefix(name string) error {
	return s.db.Save(&UserPrefix{Name: name}).Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
