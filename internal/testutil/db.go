// Package testutil provides helpers shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/repository"
)

var dbSeq atomic.Int64

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a private, migrated in-memory SQLite database that is closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := repository.NewDB(dsn, Logger())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Clock is a manually advanced time source.
type Clock struct {
	now  time.Time
	step time.Duration
}

// NewClock starts at start and moves forward by step on every reading.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

func (c *Clock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set makes t the next reading.
func (c *Clock) Set(t time.Time) {
	c.now = t
}
