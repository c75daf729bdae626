package store

import (
	"context"
	"testing"
	"time"

	"farmacore/internal/models"
)

func TestDeactivateIsIdempotent(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	sess := &models.Session{UserID: "u1", Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour), IsActive: true}
	if err := sessions.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := sessions.Deactivate(ctx, "tok-1", models.ReasonLogout); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := sessions.ByToken(ctx, "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Error("session still active after deactivate")
	}
	if got.LogoutReason != models.ReasonLogout {
		t.Errorf("reason = %q, want logout", got.LogoutReason)
	}
	firstEnded := got.EndedAt

	// second call matches no active row and must not touch the record
	if err := sessions.Deactivate(ctx, "tok-1", models.ReasonRevoked); err != nil {
		t.Fatalf("repeat deactivate: %v", err)
	}
	again, err := sessions.ByToken(ctx, "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if again.LogoutReason != models.ReasonLogout {
		t.Errorf("reason changed on repeat call: %q", again.LogoutReason)
	}
	if firstEnded == nil || again.EndedAt == nil || !again.EndedAt.Equal(*firstEnded) {
		t.Error("ended_at changed on repeat call")
	}
}

func TestDeactivateAllForUser(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	for _, tok := range []string{"a", "b", "c"} {
		sess := &models.Session{UserID: "u1", Token: tok, ExpiresAt: time.Now().Add(time.Hour), IsActive: true}
		if err := sessions.Create(ctx, sess); err != nil {
			t.Fatal(err)
		}
	}
	other := &models.Session{UserID: "u2", Token: "other", ExpiresAt: time.Now().Add(time.Hour), IsActive: true}
	if err := sessions.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	if err := sessions.DeactivateAllForUser(ctx, "u1", models.ReasonLogout); err != nil {
		t.Fatalf("deactivate all: %v", err)
	}

	active, err := sessions.ActiveByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("u1 still has %d active sessions", len(active))
	}
	otherActive, err := sessions.ActiveByUser(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(otherActive) != 1 {
		t.Error("u2's session should be untouched")
	}
}

func TestExpireOverdueAndDeleteExpired(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	overdue := &models.Session{UserID: "u1", Token: "old", ExpiresAt: time.Now().Add(-time.Minute), IsActive: true}
	fresh := &models.Session{UserID: "u1", Token: "new", ExpiresAt: time.Now().Add(time.Hour), IsActive: true}
	for _, s := range []*models.Session{overdue, fresh} {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	expired, err := sessions.ExpireOverdue(ctx)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}
	got, err := sessions.ByToken(ctx, "old")
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive || got.LogoutReason != models.ReasonExpired {
		t.Errorf("overdue session not expired: active=%v reason=%q", got.IsActive, got.LogoutReason)
	}

	purged, err := sessions.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
	if _, err := sessions.ByToken(ctx, "old"); err == nil {
		t.Error("expired session still present after purge")
	}
	if _, err := sessions.ByToken(ctx, "new"); err != nil {
		t.Errorf("fresh session was purged: %v", err)
	}
}
