package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"simple_pomodoro/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// memUsers is an in-memory repository.Authorization.
type memUsers struct {
	byName    map[string]*models.User
	lookups   int
	creates   int
	getErr    error
	createErr error
}

func newMemUsers() *memUsers { return &memUsers{byName: map[string]*models.User{}} }

func (m *memUsers) Create(_ context.Context, username, hash string) (int, error) {
	m.creates++
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := len(m.byName) + 1
	m.byName[username] = &models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.lookups++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byName[username], nil
}

var testAuthConfig = AuthConfig{SigningKey: "test-signing-key", TokenTTL: time.Hour}

// forgeToken signs claims for userID outside the service.
func forgeToken(t *testing.T, method jwt.SigningMethod, key any, userID int, expires time.Time) string {
	t.Helper()
	tk := jwt.NewWithClaims(method, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(expires.Add(-time.Hour)),
		},
		UserID: userID,
	})
	s, err := tk.SignedString(key)
	if err != nil {
		t.Fatalf("sign %s: %v", method.Alg(), err)
	}
	return s
}

func TestAuthService_SignUpThenSignIn(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, testAuthConfig)
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "  focus-fan ", "tomato25")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	stored := users.byName["focus-fan"]
	if stored == nil || stored.ID != id {
		t.Fatalf("username not trimmed or not stored: %+v", users.byName)
	}
	if stored.PasswordHash == "tomato25" || verifyPassword(stored.PasswordHash, "tomato25") != nil {
		t.Fatalf("stored hash is not a bcrypt hash of the password")
	}

	token, err := svc.GenerateToken(ctx, "focus-fan", "tomato25")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	got, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != id {
		t.Fatalf("token user=%d, want %d", got, id)
	}
}

func TestAuthService_SignUpRejects(t *testing.T) {
	repoDown := errors.New("repo down")

	cases := []struct {
		name        string
		username    string
		password    string
		setup       func(*memUsers)
		wantErr     error
		wantLookups int
	}{
		{name: "blank username", username: "  ", password: "pw", wantLookups: 0},
		{name: "blank password", username: "sam", password: "   ", wantLookups: 1},
		{
			name: "taken username", username: "sam", password: "pw",
			setup:   func(m *memUsers) { m.byName["sam"] = &models.User{ID: 3, Username: "sam"} },
			wantErr: ErrUserExists, wantLookups: 1,
		},
		{
			name: "lookup failure", username: "sam", password: "pw",
			setup:   func(m *memUsers) { m.getErr = repoDown },
			wantErr: repoDown, wantLookups: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newMemUsers()
			if tc.setup != nil {
				tc.setup(users)
			}
			svc := NewAuthService(users, testAuthConfig)

			_, err := svc.SignUp(context.Background(), tc.username, tc.password)
			if err == nil {
				t.Fatalf("SignUp succeeded, want error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v, want %v", err, tc.wantErr)
			}
			if users.lookups != tc.wantLookups || users.creates != 0 {
				t.Fatalf("lookups=%d creates=%d", users.lookups, users.creates)
			}
		})
	}
}

func TestAuthService_SignUpCreateFailure(t *testing.T) {
	users := newMemUsers()
	users.createErr = errors.New("disk full")
	svc := NewAuthService(users, testAuthConfig)

	if _, err := svc.SignUp(context.Background(), "sam", "pw"); !errors.Is(err, users.createErr) {
		t.Fatalf("err=%v, want create error", err)
	}
}

func TestAuthService_GenerateTokenRejects(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, testAuthConfig)
	if _, err := svc.SignUp(context.Background(), "sam", "correct"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.GenerateToken(context.Background(), "ghost", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: err=%v", err)
	}
	if _, err := svc.GenerateToken(context.Background(), "sam", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password: err=%v", err)
	}

	users.getErr = errors.New("query failed")
	if _, err := svc.GenerateToken(context.Background(), "sam", "correct"); !errors.Is(err, users.getErr) {
		t.Fatalf("repo failure: err=%v", err)
	}
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa key: %v", err)
	}
	key := []byte(testAuthConfig.SigningKey)
	later := time.Now().Add(time.Hour)

	tokens := map[string]string{
		"malformed":     "not-a-jwt",
		"foreign key":   forgeToken(t, jwt.SigningMethodHS256, []byte("someone-else"), 5, later),
		"expired":       forgeToken(t, jwt.SigningMethodHS256, key, 11, time.Now().Add(-time.Hour)),
		"non-hmac alg":  forgeToken(t, jwt.SigningMethodRS256, rsaKey, 12, later),
		"empty string":  "",
		"wrong segment": "a.b.c",
	}

	svc := NewAuthService(newMemUsers(), testAuthConfig)
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			if uid, err := svc.ParseToken(token); err == nil {
				t.Fatalf("accepted token for user %d", uid)
			}
		})
	}

	if uid, err := svc.ParseToken(forgeToken(t, jwt.SigningMethodHS256, key, 99, later)); err != nil || uid != 99 {
		t.Fatalf("valid token: uid=%d err=%v", uid, err)
	}
}

func TestAuthService_TokenLifetime(t *testing.T) {
	expiryOf := func(t *testing.T, svc *AuthService) time.Duration {
		t.Helper()
		issued := time.Now()
		token, err := svc.issueToken(1)
		if err != nil {
			t.Fatalf("issueToken: %v", err)
		}
		claims := &Claims{}
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			t.Fatalf("ParseUnverified: %v", err)
		}
		return claims.ExpiresAt.Time.Sub(issued).Round(time.Minute)
	}

	if got := expiryOf(t, NewAuthService(newMemUsers(), AuthConfig{SigningKey: "k", TokenTTL: 5 * time.Minute})); got != 5*time.Minute {
		t.Fatalf("configured ttl: token lives %v", got)
	}
	if got := expiryOf(t, NewAuthService(newMemUsers(), AuthConfig{SigningKey: "k"})); got != defaultTokenTTL {
		t.Fatalf("default ttl: token lives %v, want %v", got, defaultTokenTTL)
	}
}

func TestAuthService_MissingSigningKey(t *testing.T) {
	svc := NewAuthService(newMemUsers(), AuthConfig{})

	if _, err := svc.issueToken(1); !errors.Is(err, errNoSigningKey) {
		t.Fatalf("issueToken err=%v", err)
	}
	if _, err := svc.ParseToken("a.b.c"); !errors.Is(err, errNoSigningKey) {
		t.Fatalf("ParseToken err=%v", err)
	}
}
