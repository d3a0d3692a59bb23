package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth/middleware"
	"auth/models"
	"auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	h := NewAuthHandler(db)
	r := gin.New()

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}
	r.GET("/users/me", middleware.JWTMiddleware(), h.Profile)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRegister(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email:    "rafael@test.com",
		Username: "rafael",
		Password: "senha-forte-123",
	}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["access_token"] == "" || body["refresh_token"] == "" {
		t.Error("register response is missing tokens")
	}

	var user models.User
	if err := db.Where("email = ?", "rafael@test.com").First(&user).Error; err != nil {
		t.Fatalf("registered user not persisted: %v", err)
	}
	if !user.HasRole(models.RoleParticipant) {
		t.Errorf("new user roles = %v, want participant", user.Roles)
	}
	if user.IsAdmin() {
		t.Error("new user must not be an admin")
	}
	if user.Password == "senha-forte-123" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r, _ := setupTestRouter(t)

	first := models.RegisterRequest{Email: "rafael@test.com", Username: "rafael", Password: "senha-forte-123"}
	if w := doJSON(t, r, http.MethodPost, "/auth/register", first, nil); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}

	sameEmail := models.RegisterRequest{Email: "rafael@test.com", Username: "outro", Password: "senha-forte-123"}
	if w := doJSON(t, r, http.MethodPost, "/auth/register", sameEmail, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", w.Code)
	}

	sameUsername := models.RegisterRequest{Email: "outro@test.com", Username: "rafael", Password: "senha-forte-123"}
	if w := doJSON(t, r, http.MethodPost, "/auth/register", sameUsername, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate username status = %d, want 409", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, db := setupTestRouter(t)

	hash, err := utils.HashPassword("senha-forte-123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := models.User{
		Email:    "juliana@test.com",
		Username: "juliana",
		Slug:     "juliana",
		Password: hash,
		Enabled:  true,
		Roles:    models.GetDefaultRoles(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    "juliana@test.com",
		Password: "senha-forte-123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    "juliana@test.com",
		Password: "senha-errada",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", w.Code)
	}

	if err := db.Model(&user).Update("enabled", false).Error; err != nil {
		t.Fatalf("Failed to disable user: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    "juliana@test.com",
		Password: "senha-forte-123",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("disabled account status = %d, want 401", w.Code)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email:    "rafael@test.com",
		Username: "rafael",
		Password: "senha-forte-123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}
	oldToken := decodeBody(t, w)["refresh_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: oldToken}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", w.Code, w.Body.String())
	}
	newToken := decodeBody(t, w)["refresh_token"].(string)
	if newToken == oldToken {
		t.Error("refresh token was not rotated")
	}

	// Spent token is rejected
	w = doJSON(t, r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: oldToken}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("spent refresh token status = %d, want 401", w.Code)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email:    "rafael@test.com",
		Username: "rafael",
		Password: "senha-forte-123",
	}, nil)
	token := decodeBody(t, w)["refresh_token"].(string)

	if w := doJSON(t, r, http.MethodPost, "/auth/logout", models.RefreshTokenRequest{RefreshToken: token}, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: token}, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout status = %d, want 401", w.Code)
	}
}

func TestProfileRequiresValidToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email:    "rafael@test.com",
		Username: "rafael",
		Password: "senha-forte-123",
	}, nil)
	access := decodeBody(t, w)["access_token"].(string)

	if w := doJSON(t, r, http.MethodGet, "/users/me", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous profile status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/users/me", nil, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", access),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated profile status = %d, body %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["email"] != "rafael@test.com" {
		t.Errorf("profile email = %v, want rafael@test.com", decodeBody(t, w)["email"])
	}
}
