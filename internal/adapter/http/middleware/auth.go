package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

const userKey = "user"

// AuthMiddleware requires a valid bearer token and stores the resolved user on
// the context.
func AuthMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c, lang)
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				zap.L().Error("failed to authenticate request", zap.Error(err))
				c.AbortWithStatusJSON(
					http.StatusInternalServerError,
					apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCurrentUser, lang),
				)
				return
			}
			abortUnauthenticated(c, lang)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthenticated(c *gin.Context, lang string) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang),
	)
}
