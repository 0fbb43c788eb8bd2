package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-app/internal/config"
	"todo-app/internal/repository/db"
	"todo-app/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       []byte("test-secret-key-that-is-long-enough!"),
		TokenExpiration: 7 * 24 * time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService(&testutil.MockDatabase{}, testAuthConfig())

	token, err := service.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Expected no error generating token, got: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("Expected the token to validate, got: %v", err)
	}

	if claims.Subject != "user-123" {
		t.Errorf("Expected subject 'user-123', got '%s'", claims.Subject)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Expected email claim 'test@example.com', got '%s'", claims.Email)
	}

	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(wantExpiry.Add(-time.Minute)) || claims.ExpiresAt.Time.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("Expected expiry about 7 days out, got %v", claims.ExpiresAt)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService(&testutil.MockDatabase{}, testAuthConfig())
	verifier := NewService(&testutil.MockDatabase{}, &config.AuthConfig{
		JWTSecret:       []byte("a-different-secret-key-entirely!!"),
		TokenExpiration: time.Hour,
	})

	token, err := issuer.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with the wrong secret")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService(&testutil.MockDatabase{}, testAuthConfig())

	if _, err := service.ValidateToken("not.a.token"); err == nil {
		t.Error("Expected validation to fail for a malformed token")
	}
}

func TestSignupHandler_Success(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB, testAuthConfig())

	mockDB.CreateUserFunc = func(name, email, passwordHash string) (*db.User, error) {
		// The handler stores a bcrypt hash, never the raw password
		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("password123")); err != nil {
			t.Errorf("Expected a bcrypt hash of the password, got '%s'", passwordHash)
		}
		return &db.User{ID: "user-123", Name: name, Email: email}, nil
	}

	body, _ := json.Marshal(SignupRequest{Name: "Test User", Email: "test@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.SignupHandler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.AccessToken == "" {
		t.Error("Expected an access token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("Expected token type 'bearer', got '%s'", resp.TokenType)
	}
	if resp.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", resp.UserID)
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB, testAuthConfig())

	mockDB.CreateUserFunc = func(name, email, passwordHash string) (*db.User, error) {
		return nil, fmt.Errorf("creating user: %w", db.ErrDuplicateEmail)
	}

	body, _ := json.Marshal(SignupRequest{Name: "Test User", Email: "taken@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.SignupHandler(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestSignupHandler_ShortPassword(t *testing.T) {
	service := NewService(&testutil.MockDatabase{}, testAuthConfig())

	body, _ := json.Marshal(SignupRequest{Name: "Test User", Email: "test@example.com", Password: "short"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.SignupHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB, testAuthConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	mockDB.GetUserByEmailFunc = func(email string) (*db.User, error) {
		return &db.User{ID: "user-123", Name: "Test User", Email: email, PasswordHash: string(hash)}, nil
	}

	body, _ := json.Marshal(LoginRequest{Email: "test@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.LoginHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("Expected an access token")
	}

	// The issued token must round-trip through validation
	claims, err := service.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("Expected the issued token to validate, got: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Expected subject 'user-123', got '%s'", claims.Subject)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB, testAuthConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	mockDB.GetUserByEmailFunc = func(email string) (*db.User, error) {
		return &db.User{ID: "user-123", Email: email, PasswordHash: string(hash)}, nil
	}

	body, _ := json.Marshal(LoginRequest{Email: "test@example.com", Password: "wrong-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.LoginHandler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB, testAuthConfig())

	mockDB.GetUserByEmailFunc = func(email string) (*db.User, error) {
		return nil, db.ErrNotFound
	}

	body, _ := json.Marshal(LoginRequest{Email: "nobody@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	service.LoginHandler(w, req)

	// Unknown user and wrong password are indistinguishable to the caller
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Invalid credentials" {
		t.Errorf("Expected generic 'Invalid credentials', got '%s'", resp.Message)
	}
}

func TestMiddleware(t *testing.T) {
	service := NewService(&testutil.MockDatabase{}, testAuthConfig())

	token, err := service.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var gotUserID string
	handler := service.Middleware(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "malformed token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != "user-123" {
				t.Errorf("Expected user id 'user-123' in context, got '%s'", gotUserID)
			}
		})
	}
}
