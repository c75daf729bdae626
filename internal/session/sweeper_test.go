package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmacore/internal/models"
	"farmacore/internal/store"
)

var testDBSeq atomic.Int64

func testSessions(t *testing.T) *store.SessionStore {
	t.Helper()
	dsn := fmt.Sprintf("file:sweeptest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewSessionStore(db)
}

func TestSweepExpiresAndPurges(t *testing.T) {
	sessions := testSessions(t)
	ctx := context.Background()

	overdue := &models.Session{UserID: "u1", Token: "old", ExpiresAt: time.Now().Add(-time.Hour), IsActive: true}
	fresh := &models.Session{UserID: "u1", Token: "new", ExpiresAt: time.Now().Add(time.Hour), IsActive: true}
	for _, s := range []*models.Session{overdue, fresh} {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	NewSweeper(sessions, zap.NewNop().Sugar()).Sweep()

	if _, err := sessions.ByToken(ctx, "old"); err == nil {
		t.Error("overdue session survived the sweep")
	}
	got, err := sessions.ByToken(ctx, "new")
	if err != nil {
		t.Fatalf("fresh session gone: %v", err)
	}
	if !got.IsActive {
		t.Error("fresh session deactivated by sweep")
	}
}

func TestSweeperRejectsBadSpec(t *testing.T) {
	s := NewSweeper(testSessions(t), zap.NewNop().Sugar())
	if err := s.Start("not a cron spec"); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid spec")
	}
}
