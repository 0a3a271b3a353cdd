package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edusave/edusave-api/internal/domain/user"
	"github.com/edusave/edusave-api/internal/pkg/jwt"
	"github.com/edusave/edusave-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail *user.User
	byID    *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byID == nil || f.byID.ID != id {
		return nil, user.ErrUserNotFound
	}
	return f.byID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.byEmail == nil || f.byEmail.Email != email {
		return nil, user.ErrUserNotFound
	}
	return f.byEmail, nil
}

func (f *fakeUserRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func newTestUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	hash, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return &user.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

func TestLoginHandlerSuccess(t *testing.T) {
	u := newTestUser(t, user.RoleAdmin)
	svc := NewService(&fakeUserRepo{byEmail: u, byID: u}, jwt.NewService("secret", time.Minute, time.Hour), nil)
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: u.Email, Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
			Tokens struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Success || out.Data.Tokens.AccessToken == "" || out.Data.Tokens.RefreshToken == "" {
		t.Fatal("expected tokens in response")
	}
	if out.Data.User.Role != "admin" {
		t.Fatalf("expected admin role, got %s", out.Data.User.Role)
	}
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	u := newTestUser(t, user.RoleAdmin)
	svc := NewService(&fakeUserRepo{byEmail: u, byID: u}, jwt.NewService("secret", time.Minute, time.Hour), nil)
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: u.Email, Password: "wrongpassword"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, jwt.NewService("secret", time.Minute, time.Hour), nil)
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: "nobody@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLoginHandlerValidation(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, jwt.NewService("secret", time.Minute, time.Hour), nil)
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: "not-an-email", Password: "short"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRefreshHandlerWithoutRedis(t *testing.T) {
	// With no Redis configured, refresh tokens cannot be validated
	svc := NewService(&fakeUserRepo{}, jwt.NewService("secret", time.Minute, time.Hour), nil)
	h := NewHandler(svc)

	body, _ := json.Marshal(RefreshRequest{RefreshToken: "deadbeef"})
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Refresh(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}
