// Package history keeps a local ledger of every playlist item processed,
// stored in SQLite through gorm.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/model"
)

const (
	DefaultDBFile  = "history.sqlite3"
	DefaultLimit   = 20
	errStoreNil    = "history store is nil"
	StatusDone     = "done"
	StatusSkipped  = "skipped"
	sqlitePragmas  = "?_pragma=busy_timeout(5000)"
	dirPermissions = 0o755
)

// Entry is one processed playlist item
type Entry struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BatchID       string        `gorm:"index:idx_batch" json:"batch_id"`
	PlaylistTitle string        `json:"playlist_title"`
	Position      int           `json:"position"`
	Reference     string        `json:"reference"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Path          string        `json:"path"`
	Elapsed       time.Duration `json:"elapsed"`
	Attempts      int           `json:"attempts"`
	Status        string        `gorm:"index:idx_status" json:"status"`
	Error         string        `json:"error,omitempty"`
	CreatedAt     time.Time     `gorm:"index:idx_created" json:"created_at"`
}

// FromResult builds the ledger entry for one batch result. Only finished
// results are recorded.
func FromResult(batchID, playlistTitle string, res download.Result) (Entry, error) {
	if !res.State.IsFinished() {
		return Entry{}, fmt.Errorf("result of %s is not finished (state %q)", res.Reference, res.State)
	}

	e := Entry{
		BatchID:       batchID,
		PlaylistTitle: playlistTitle,
		Position:      res.Index,
		Reference:     res.Reference,
		Path:          res.OutputPath,
		Elapsed:       res.Elapsed,
		Attempts:      res.Attempts,
		Status:        StatusDone,
	}
	if res.Track != nil {
		e.Title = res.Track.Title
		e.Author = res.Track.Author
	}
	if res.State == model.ItemStateSkipped {
		e.Status = StatusSkipped
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	return e, nil
}

// Store persists history entries
type Store struct {
	DB *gorm.DB
	db *sql.DB
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(path+sqlitePragmas), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{DB: db, db: sqlDB}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores e, assigning an ID and creation time when missing
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if s == nil || s.DB == nil {
		return errors.New(errStoreNil)
	}

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating entry id: %w", err)
		}
		e.ID = id.String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	if err := s.DB.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var entries []Entry
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("querying recent entries: %w", err)
	}
	return entries, nil
}

// ByBatch returns the entries of one batch in playlist order
func (s *Store) ByBatch(ctx context.Context, batchID string) ([]Entry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}

	var entries []Entry
	err := s.DB.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("querying batch %s: %w", batchID, err)
	}
	return entries, nil
}
