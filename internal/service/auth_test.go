package service

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmacore/internal/apperr"
	"farmacore/internal/auth"
	"farmacore/internal/models"
	"farmacore/internal/store"
)

var testDBSeq atomic.Int64

func newTestService(t *testing.T) (*AuthService, *store.Stores) {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Module{}, &models.Role{}, &models.RoleModule{}, &models.User{}, &models.Session{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	stores := store.New(db)
	codec := auth.NewCodec("test-secret", time.Hour)
	svc := NewAuthService(db, stores.Users, stores.Sessions, codec, zap.NewNop().Sugar())
	return svc, stores
}

func seedUser(t *testing.T, stores *store.Stores, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Name: "Admin", LastName: "Test", Email: email, Password: hash, IsActive: true}
	if err := stores.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginReturnsVerifiableToken(t *testing.T) {
	svc, stores := newTestService(t)
	u := seedUser(t, stores, "admin@test.com", "secret")

	res, err := svc.Login(context.Background(), "admin@test.com", "secret", "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("empty token")
	}
	claims, err := svc.codec.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != u.ID {
		t.Errorf("claims subject = %q, want %q", claims.Subject, u.ID)
	}
	if claims.Email != "admin@test.com" {
		t.Errorf("claims email = %q", claims.Email)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, stores := newTestService(t)
	seedUser(t, stores, "admin@test.com", "secret")

	if _, err := svc.Login(context.Background(), "  Admin@Test.com ", "secret", "", ""); err != nil {
		t.Fatalf("login with unnormalized email: %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@test.com", "secret", "", "")
	ae, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("err = %v, want *apperr.Error", err)
	}
	if ae.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ae.Status)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, stores := newTestService(t)
	seedUser(t, stores, "admin@test.com", "secret")

	_, err := svc.Login(context.Background(), "admin@test.com", "nope", "", "")
	ae, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("err = %v, want *apperr.Error", err)
	}
	if ae.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ae.Status)
	}
}

func TestSecondLoginDeactivatesFirstSession(t *testing.T) {
	svc, stores := newTestService(t)
	u := seedUser(t, stores, "admin@test.com", "secret")
	ctx := context.Background()

	// back-to-back within the same second: the jti claim keeps the two
	// tokens distinct, so the unique session token index cannot trip
	first, err := svc.Login(ctx, "admin@test.com", "secret", "", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Login(ctx, "admin@test.com", "secret", "", "")
	if err != nil {
		t.Fatalf("same-second relogin rejected: %v", err)
	}
	if second.Token == first.Token {
		t.Fatal("relogin reused the first token")
	}

	active, err := stores.Sessions.ActiveByUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 {
		t.Fatalf("active sessions = %d, want exactly 1", len(active))
	}

	old, err := stores.Sessions.ByToken(ctx, first.Token)
	if err != nil {
		t.Fatal(err)
	}
	if old.IsActive {
		t.Error("first session still active after second login")
	}
	if old.LogoutReason != models.ReasonLogout {
		t.Errorf("first session reason = %q, want logout", old.LogoutReason)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, stores := newTestService(t)
	u := seedUser(t, stores, "admin@test.com", "secret")
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin@test.com", "secret", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, res.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(ctx, res.Token); err != nil {
		t.Fatalf("repeat logout must not error: %v", err)
	}

	active, err := stores.Sessions.ActiveByUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("active sessions after logout = %d", len(active))
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Logout(context.Background(), "")
	ae, ok := err.(*apperr.Error)
	if !ok || ae.Status != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 apperr", err)
	}
}
