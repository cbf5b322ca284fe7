package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizbid/pkg/errors"
)

type stubVerifier struct {
	uid string
}

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if s.uid == "" {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return s.uid, nil
}

func invoke(m *AuthMiddleware, optional bool, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := m.Authenticate
	if optional {
		mw = m.OptionalAuthenticate
	}
	return rec, c, mw(next)(c)
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{uid: "user-1"})

	rec, c, err := invoke(m, false, "Bearer good-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", c.Get("uid"))
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	cases := []struct {
		name     string
		verifier stubVerifier
		header   string
	}{
		{"missing header", stubVerifier{uid: "user-1"}, ""},
		{"not bearer", stubVerifier{uid: "user-1"}, "Basic abc"},
		{"rejected token", stubVerifier{}, "Bearer bad-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewAuthMiddleware(tc.verifier)
			_, _, err := invoke(m, false, tc.header)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{uid: "user-1"})

	rec, c, err := invoke(m, true, "Bearer good-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", c.Get("uid"))

	// Anonymous and invalid tokens both pass through without a uid.
	rec, c, err = invoke(m, true, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("uid"))

	rejecting := NewAuthMiddleware(stubVerifier{})
	rec, c, err = invoke(rejecting, true, "Bearer bad-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("uid"))
}
