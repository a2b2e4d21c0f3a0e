package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/pkg/serverutils"
	internalWS "github.com/dhanushgc/HireMind/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWsApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()))
	h := NewInterviewWsHandler(internalWS.NewHub(nil, logger.NewNopLogger()), secret, logger.NewNopLogger())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestServeWsHandshakeChecks(t *testing.T) {
	const secret = "s3cret"
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"candidate_id": "c1"}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		target string
		want   int
	}{
		{"missing job", "", "/api/interview/v1/ws?candidate_id=c1", fiber.StatusBadRequest},
		{"plain http is not an upgrade", "", "/api/interview/v1/ws?candidate_id=c1&job_id=j1", fiber.StatusUpgradeRequired},
		{"missing token", secret, "/api/interview/v1/ws?candidate_id=c1&job_id=j1", fiber.StatusUnauthorized},
		{"other candidate", secret, "/api/interview/v1/ws?candidate_id=c2&job_id=j1&token=" + token, fiber.StatusForbidden},
		{"valid token", secret, "/api/interview/v1/ws?candidate_id=c1&job_id=j1&token=" + token, fiber.StatusUpgradeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newWsApp(tt.secret).Test(httptest.NewRequest("GET", tt.target, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
