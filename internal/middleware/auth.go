package middleware

import (
	"strconv"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware - проверка JWT. Кладет userID и role в контекст.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10))
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// findUser вынесен в переменную, чтобы тесты могли подменить источник
var findUser = func(db *gorm.DB, id uint) (*models.User, error) {
	return repositories.NewUserRepository(db).FindByID(id)
}

// VerifiedMiddleware - пускает дальше только пользователей с подтвержденной
// почтой. Должен стоять после AuthMiddleware и DBMiddleware.
func VerifiedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		dbVal, _ := c.Get(string(contextkeys.DBContextKey))
		db, _ := dbVal.(*gorm.DB)

		user, err := findUser(db, userID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !user.IsActive {
			apperrors.HandleError(c, apperrors.ErrUserInactive)
			c.Abort()
			return
		}
		if !user.IsEmailVerified {
			// клиенту сообщается, какую почту нужно подтвердить
			apperrors.HandleError(c, apperrors.ErrVerificationRequired.WithDetails(gin.H{"email": user.Email}))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoles - доступ только для перечисленных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}

		if !roleSet[models.UserRole(roleStr)] {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID достает ID текущего пользователя из контекста
func GetUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// GetUserRole достает роль текущего пользователя из контекста
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	val, exists := c.Get("role")
	if !exists {
		return "", false
	}
	roleStr, ok := val.(string)
	if !ok {
		return "", false
	}
	return models.UserRole(roleStr), true
}
