package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository with the same semantics the
// mongo implementation provides: unique emails, atomic reset-token consume.
type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, userID, token string, expires time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetExpires = expires
	return nil
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, token, newHash string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken == token && now.Before(u.ResetExpires) {
			u.PasswordHash = newHash
			u.ResetToken = ""
			u.ResetExpires = time.Time{}
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrResetTokenInvalid
}

func newTestAuthService(repo *stubUserRepo) (*AuthService, *TokenIssuer) {
	issuer := NewTokenIssuer("secret", time.Hour)
	return NewAuthService(repo, issuer, time.Hour), issuer
}

func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo)

	regToken, created, err := svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if regToken == "" || created == nil {
		t.Fatalf("expected token and user, got %q %v", regToken, created)
	}
	if created.PasswordHash == "Secret1!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Secret1!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	loginToken, user, err := svc.Login(context.Background(), "a@x.com", "Secret1!")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("login resolved different user: %s vs %s", user.ID, created.ID)
	}

	subject, err := issuer.Verify(loginToken)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if subject != created.ID {
		t.Fatalf("token subject %q, want %q", subject, created.ID)
	}
}

func TestAuthService_Register_DuplicateKeepsHash(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, first, err := svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	originalHash := repo.users[first.ID].PasswordHash

	if _, _, err := svc.Register(context.Background(), "a@x.com", "Another1!", "B"); err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if repo.users[first.ID].PasswordHash != originalHash {
		t.Fatalf("duplicate registration altered the stored hash")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	cases := []struct{ email, password, name string }{
		{"", "Secret1!", "A"},
		{"a@x.com", "short", "A"},
		{"a@x.com", "Secret1!", ""},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.email, tc.password, tc.name); err != domain.ErrValidation {
			t.Fatalf("Register(%q,%q,%q): expected ErrValidation, got %v", tc.email, tc.password, tc.name, err)
		}
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, user, err := svc.Register(context.Background(), "  A@X.com ", "Secret1!", "A")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Secret1!"); err != nil {
		t.Fatalf("login with normalized email failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _, _ = svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if err := svc.ForgotPassword(context.Background(), "ghost@x.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ForgotPassword_StampsToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, user, _ := svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	if err := svc.ForgotPassword(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	stored := repo.users[user.ID]
	if len(stored.ResetToken) != 64 { // 32 bytes hex-encoded
		t.Fatalf("expected 64-char hex token, got %d chars", len(stored.ResetToken))
	}
	if !stored.HasResetToken(time.Now()) {
		t.Fatalf("expected live reset token")
	}
	if stored.HasResetToken(time.Now().Add(2 * time.Hour)) {
		t.Fatalf("token should be expired past its TTL")
	}
}

func TestAuthService_ResetPassword_SingleUse(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, user, _ := svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	_ = svc.ForgotPassword(context.Background(), "a@x.com")
	resetToken := repo.users[user.ID].ResetToken

	session, reset, err := svc.ResetPassword(context.Background(), resetToken, "NewSecret1!")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if session == "" || reset.ID != user.ID {
		t.Fatalf("unexpected reset result: %q %+v", session, reset)
	}

	// Old password dead, new password live.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "Secret1!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "NewSecret1!"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Token is consumed; a replay must fail.
	if _, _, err := svc.ResetPassword(context.Background(), resetToken, "Replay123!"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on replay, got %v", err)
	}
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, user, _ := svc.Register(context.Background(), "a@x.com", "Secret1!", "A")
	_ = svc.ForgotPassword(context.Background(), "a@x.com")

	// Force the expiry into the past.
	repo.users[user.ID].ResetExpires = time.Now().Add(-time.Minute)
	token := repo.users[user.ID].ResetToken

	if _, _, err := svc.ResetPassword(context.Background(), token, "NewSecret1!"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestAuthService_ResetPassword_UnknownToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, _, err := svc.ResetPassword(context.Background(), "deadbeef", "NewSecret1!"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
