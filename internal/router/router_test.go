package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"tailorshop/internal/auth"
	"tailorshop/internal/handler"
	"tailorshop/internal/model"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		claims       *auth.Claims
		expectedCode int
	}{
		{name: "anonymous", expectedCode: http.StatusUnauthorized},
		{name: "customer", claims: &auth.Claims{UserID: "u-1", Role: model.RoleCustomer}, expectedCode: http.StatusForbidden},
		{name: "tailor", claims: &auth.Claims{UserID: "t-1", Role: model.RoleTailor}, expectedCode: http.StatusOK},
		{name: "admin", claims: &auth.Claims{UserID: "a-1", Role: model.RoleAdmin}, expectedCode: http.StatusOK},
	}

	mw := RequireRole(model.RoleTailor, model.RoleAdmin)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tailor/bookings", nil), rec)
			if tt.claims != nil {
				c.Set(handler.ContextKeyToken, &jwt.Token{Claims: tt.claims, Valid: true})
			}

			err := mw(next)(c)
			if tt.expectedCode == http.StatusOK {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			he, ok := err.(*echo.HTTPError)
			if assert.True(t, ok) {
				assert.Equal(t, tt.expectedCode, he.Code)
			}
		})
	}
}

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, id string) bool { return r[id] }

func TestRejectRevoked(t *testing.T) {
	mw := rejectRevoked(revokedSet{"jti-dead": true})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for id, want := range map[string]int{"jti-dead": http.StatusUnauthorized, "jti-live": http.StatusOK} {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), rec)
		claims := &auth.Claims{UserID: "u-1"}
		claims.ID = id
		c.Set(handler.ContextKeyToken, &jwt.Token{Claims: claims, Valid: true})

		err := mw(next)(c)
		if want == http.StatusOK {
			assert.NoError(t, err)
			continue
		}
		he, ok := err.(*echo.HTTPError)
		if assert.True(t, ok) {
			assert.Equal(t, want, he.Code)
		}
	}
}
