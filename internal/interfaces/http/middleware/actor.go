package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"locates/internal/infrastructure/auth"
	"locates/internal/shared/constants"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
	"locates/internal/shared/utils"
	"locates/internal/shared/utils/logutil"
)

// ActorMiddleware identifies who is making a request. Authentication is the
// identity service's job; a bearer token is verified when a secret is
// configured, otherwise the X-Actor-* headers are trusted.
type ActorMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewActorMiddleware(jwtService *auth.JWTService, logger logger.Interface) *ActorMiddleware {
	return &ActorMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *ActorMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(constants.HeaderActorName))
		email := strings.TrimSpace(c.GetHeader(constants.HeaderActorEmail))

		if token := bearerToken(c); token != "" && m.jwtService != nil && m.jwtService.Enabled() {
			claims, err := m.jwtService.Verify(token)
			if err != nil {
				m.logger.Warnw("rejected actor token",
					"token", logutil.TruncateForLog(token, 8),
					"error", err)
				utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid or expired token"))
				c.Abort()
				return
			}
			name, email = claims.Name, claims.Email
		}

		if name != "" {
			c.Set(constants.ContextKeyActorName, name)
		}
		if email != "" {
			c.Set(constants.ContextKeyActorEmail, email)
			m.logger.Debugw("actor identified", "actor", name, "email", utils.MaskEmail(email))
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
