package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

type errorBody struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func issueToken(t *testing.T, userID uint, role models.UserRole) string {
	t.Helper()
	token, _, err := auth.GenerateToken(userID, string(role))
	require.NoError(t, err)
	return token
}

func performRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
			userID, _ := GetUserID(c)
			role, _ := GetUserRole(c)
			c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
		})
		return r
	}

	t.Run("valid token passes and fills context", func(t *testing.T) {
		router := newRouter()
		w := performRequest(router, issueToken(t, 42, models.UserRoleCompany))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(42), body["user_id"])
		assert.Equal(t, "company", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := performRequest(newRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(apperrors.CodeUnauthorized), decodeError(t, w).Error.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		router := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := performRequest(newRouter(), "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(apperrors.CodeInvalidToken), decodeError(t, w).Error.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		claims := &auth.Claims{
			UserID: 42,
			Role:   "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
		require.NoError(t, err)

		w := performRequest(newRouter(), forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &auth.Claims{
			UserID: 42,
			Role:   "user",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.GetConfig().JWT.Secret))
		require.NoError(t, err)

		w := performRequest(newRouter(), expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	newRouter := func(roles ...models.UserRole) *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthMiddleware(), RequireRoles(roles...), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("allowed role passes", func(t *testing.T) {
		router := newRouter(models.UserRoleAdmin)
		w := performRequest(router, issueToken(t, 1, models.UserRoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		router := newRouter(models.UserRoleCompany, models.UserRoleAdmin)
		w := performRequest(router, issueToken(t, 1, models.UserRoleCompany))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other role forbidden", func(t *testing.T) {
		router := newRouter(models.UserRoleAdmin)
		w := performRequest(router, issueToken(t, 1, models.UserRoleUser))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, string(apperrors.CodeForbidden), decodeError(t, w).Error.Code)
	})

	t.Run("no auth context", func(t *testing.T) {
		r := gin.New()
		r.GET("/protected", RequireRoles(models.UserRoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestVerifiedMiddleware(t *testing.T) {
	// подменяем источник пользователей, БД в этих тестах нет
	stubUsers := func(t *testing.T, users map[uint]*models.User) {
		t.Helper()
		orig := findUser
		findUser = func(_ *gorm.DB, id uint) (*models.User, error) {
			if u, ok := users[id]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		t.Cleanup(func() { findUser = orig })
	}

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthMiddleware(), VerifiedMiddleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("verified user passes", func(t *testing.T) {
		stubUsers(t, map[uint]*models.User{
			7: {Email: "ok@example.com", IsActive: true, IsEmailVerified: true},
		})

		w := performRequest(newRouter(), issueToken(t, 7, models.UserRoleUser))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unverified user blocked with email hint", func(t *testing.T) {
		stubUsers(t, map[uint]*models.User{
			7: {Email: "pending@example.com", IsActive: true, IsEmailVerified: false},
		})

		w := performRequest(newRouter(), issueToken(t, 7, models.UserRoleUser))
		require.Equal(t, http.StatusForbidden, w.Code)

		body := decodeError(t, w)
		assert.Equal(t, string(apperrors.CodeVerificationRequired), body.Error.Code)
		assert.Equal(t, "pending@example.com", body.Error.Details["email"])
	})

	t.Run("inactive user blocked", func(t *testing.T) {
		stubUsers(t, map[uint]*models.User{
			7: {Email: "frozen@example.com", IsActive: false, IsEmailVerified: true},
		})

		w := performRequest(newRouter(), issueToken(t, 7, models.UserRoleUser))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(apperrors.CodeUserInactive), decodeError(t, w).Error.Code)
	})

	t.Run("deleted user treated as unauthorized", func(t *testing.T) {
		stubUsers(t, map[uint]*models.User{})

		w := performRequest(newRouter(), issueToken(t, 7, models.UserRoleUser))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires auth middleware first", func(t *testing.T) {
		stubUsers(t, map[uint]*models.User{})

		r := gin.New()
		r.GET("/protected", VerifiedMiddleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
