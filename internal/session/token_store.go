package session

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// storageKey is the fixed key the auth token is persisted under, matching
// the browser-local storage convention of the web client.
const storageKey = "token"

// TokenStore persists the auth token across restarts of the same
// installation. Load returns the empty string when no token is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// storedValue is a key/value row in the local session database.
type storedValue struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value string `gorm:"type:text"`
}

// GORMTokenStore keeps the token in a local SQLite database.
type GORMTokenStore struct {
	db *gorm.DB
}

// NewGORMTokenStore opens (or creates) the session database at path and
// migrates the storage schema. Use ":memory:" for a process-local store.
func NewGORMTokenStore(path string) (*GORMTokenStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.AutoMigrate(&storedValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}
	return &GORMTokenStore{db: db}, nil
}

// Load returns the persisted token, or "" when none is stored.
func (s *GORMTokenStore) Load() (string, error) {
	var rec storedValue
	err := s.db.First(&rec, "key = ?", storageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return rec.Value, nil
}

// Save upserts the token under the fixed storage key.
func (s *GORMTokenStore) Save(token string) error {
	rec := storedValue{Key: storageKey, Value: token}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an empty store is not an error.
func (s *GORMTokenStore) Clear() error {
	err := s.db.Delete(&storedValue{}, "key = ?", storageKey).Error
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore used by tests.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the stored token, or "" when none is set.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Save stores the token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
