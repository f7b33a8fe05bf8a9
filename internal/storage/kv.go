package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is the durable storage the problem store writes its snapshot to.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Entry is one row of the key/value table.
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormKV stores values in a single table through gorm.
type GormKV struct {
	DB *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &GormKV{DB: db}, nil
}

func (kv *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := kv.DB.WithContext(ctx).First(&entry, "entry_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set overwrites the whole value in one statement, so readers see either
// the previous value or the new one.
func (kv *GormKV) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return kv.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Ping checks the underlying database connection.
func (kv *GormKV) Ping(ctx context.Context) error {
	sqlDB, err := kv.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
