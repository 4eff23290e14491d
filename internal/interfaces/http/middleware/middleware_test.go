package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locates/internal/infrastructure/auth"
	"locates/internal/shared/constants"
	"locates/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := perform(engine, http.MethodGet, "/", map[string]string{constants.HeaderXRequestID: "req-42"})
	assert.Equal(t, "req-42", w.Header().Get(constants.HeaderXRequestID))
	assert.Equal(t, "req-42", w.Body.String())

	w = perform(engine, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(constants.HeaderXRequestID), 36)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://ops.example.com"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(engine, http.MethodGet, "/", map[string]string{"Origin": "https://ops.example.com"})
	assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(engine, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(engine, http.MethodOptions, "/", map[string]string{"Origin": "https://ops.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func actorEngine(jwtSvc *auth.JWTService) *gin.Engine {
	engine := gin.New()
	engine.Use(NewActorMiddleware(jwtSvc, logger.NewNopLogger()).Identify())
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":  c.GetString(constants.ContextKeyActorName),
			"email": c.GetString(constants.ContextKeyActorEmail),
		})
	})
	return engine
}

func TestActorMiddleware_HeaderFallback(t *testing.T) {
	engine := actorEngine(auth.NewJWTService("", ""))

	w := perform(engine, http.MethodGet, "/", map[string]string{
		constants.HeaderActorName:  "Dana",
		constants.HeaderActorEmail: "dana@example.com",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Dana","email":"dana@example.com"}`, w.Body.String())
}

func TestActorMiddleware_VerifiedToken(t *testing.T) {
	svc := auth.NewJWTService("secret", "")
	token, err := svc.Generate("Pat", "pat@example.com", time.Hour)
	require.NoError(t, err)
	engine := actorEngine(svc)

	w := perform(engine, http.MethodGet, "/", map[string]string{
		constants.HeaderAuthorization: "Bearer " + token,
		constants.HeaderActorName:     "Spoofed",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Pat","email":"pat@example.com"}`, w.Body.String())
}

func TestActorMiddleware_InvalidToken(t *testing.T) {
	engine := actorEngine(auth.NewJWTService("secret", ""))

	w := perform(engine, http.MethodGet, "/", map[string]string{
		constants.HeaderAuthorization: "Bearer garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestActorMiddleware_Anonymous(t *testing.T) {
	engine := actorEngine(auth.NewJWTService("secret", ""))

	w := perform(engine, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"","email":""}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), Recovery(logger.NewNopLogger()))
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	w := perform(engine, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLogger_PassesThrough(t *testing.T) {
	engine := gin.New()
	engine.Use(Logger(logger.NewNopLogger()))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := perform(engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
