package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	d.revoked[token] = ttl
	return nil
}

func newAuthSvc(repo *stubAuthRepo, denylist *stubDenylist) *AuthService {
	return NewAuthService(repo, denylist, "secret", time.Hour, zerolog.Nop())
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:     "alice@example.com",
		Password:  "abcd1234",
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "901234567",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())

	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "abcd1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("abcd1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("expected student role, got %s", user.Role)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// second attempt with the same email but different fields still fails
	in := validRegisterInput()
	in.Password = "zzzz9999"
	in.FirstName = "Alicia"
	in.Phone = "777777777"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		ok     bool
	}{
		{"valid", func(in *ports.RegisterInput) {}, true},
		{"short email domain ok", func(in *ports.RegisterInput) { in.Email = "a@b.co" }, true},
		{"not an email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }, false},
		{"password ok", func(in *ports.RegisterInput) { in.Password = "abcd1234" }, true},
		{"password no digit", func(in *ports.RegisterInput) { in.Password = "abcdefgh" }, false},
		{"password too short no letter", func(in *ports.RegisterInput) { in.Password = "1234567" }, false},
		{"password with symbol", func(in *ports.RegisterInput) { in.Password = "abcd 1234!" }, false},
		{"single letter first name", func(in *ports.RegisterInput) { in.FirstName = "A" }, false},
		{"cyrillic name ok", func(in *ports.RegisterInput) { in.FirstName = "Арсен" }, true},
		{"hyphenated name ok", func(in *ports.RegisterInput) { in.LastName = "Smith-Jones" }, true},
		{"phone too short", func(in *ports.RegisterInput) { in.Phone = "12345678" }, false},
		{"phone with plus", func(in *ports.RegisterInput) { in.Phone = "+998901234567" }, false},
		{"phone 12 digits ok", func(in *ports.RegisterInput) { in.Phone = "998901234567" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())
			in := validRegisterInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			if tc.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.ok {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestAuthService_Register_CollectsAllViolations(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())

	in := ports.RegisterInput{
		Email:     "not-an-email",
		Password:  "1234567",
		FirstName: "A",
		LastName:  "Smith",
		Phone:     "12",
	}
	_, err := svc.Register(context.Background(), in)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 4 {
		t.Fatalf("expected 4 collected violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo, newStubDenylist())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "abcd1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleStudent {
		t.Fatalf("expected role %s, got %v", domain.RoleStudent, claims["role"])
	}
	if id, _ := claims["user_id"].(float64); int64(id) != user.ID {
		t.Fatalf("expected user_id %d in claims, got %v", user.ID, claims["user_id"])
	}
}

func TestAuthService_Login_WrongPasswordIsGeneric(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())

	_, _ = svc.Register(context.Background(), validRegisterInput())
	_, _, wrongPass := svc.Login(context.Background(), "alice@example.com", "badpass99")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "abcd1234")

	// neither failure mode reveals whether the email exists
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
}

func TestAuthService_Login_EmptyRoleDefaultsToStudent(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo, newStubDenylist())

	hash, _ := bcrypt.GenerateFromPassword([]byte("abcd1234"), bcrypt.DefaultCost)
	repo.users["old@example.com"] = &domain.User{
		ID:           7,
		Email:        "old@example.com",
		PasswordHash: string(hash),
		Role:         "",
	}

	_, user, err := svc.Login(context.Background(), "old@example.com", "abcd1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("expected defaulted student role, got %q", user.Role)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	denylist := newStubDenylist()
	svc := newAuthSvc(newStubAuthRepo(), denylist)

	_, _ = svc.Register(context.Background(), validRegisterInput())
	token, _, err := svc.Login(context.Background(), "alice@example.com", "abcd1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	ttl, ok := denylist.revoked[token]
	if !ok {
		t.Fatalf("token not revoked")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected revocation ttl: %v", ttl)
	}
}

func TestAuthService_Logout_RejectsGarbageToken(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubDenylist())

	if err := svc.Logout(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
