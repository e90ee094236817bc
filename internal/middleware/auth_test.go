package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"

	app := fiber.New()
	app.Get("/test", AuthRequired(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	signToken := func(claims jwt.MapClaims, key string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(key))
		return s
	}

	validClaims := func(userID uint, exp time.Duration) jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"exp": time.Now().Add(exp).Unix(),
		}
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID float64
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + signToken(validClaims(123, time.Hour), secret),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Header",
			authHeader:     "NotBearer token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			authHeader:     "Bearer " + signToken(validClaims(123, time.Hour), "some-other-secret"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + signToken(validClaims(123, -time.Hour), secret),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-numeric Subject",
			authHeader:     "Bearer " + signToken(jwt.MapClaims{"sub": "abc", "exp": time.Now().Add(time.Hour).Unix()}, secret),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Subject",
			authHeader:     "Bearer " + signToken(jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, secret),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				raw, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(raw, &body))
				assert.Equal(t, tt.expectedUserID, body["userID"])
			}
		})
	}
}
