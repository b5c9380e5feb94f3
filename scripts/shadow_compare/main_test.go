package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresVolatileKeys(t *testing.T) {
	ignore := map[string]struct{}{"updatedAt": {}}
	a := []byte(`{"data":[{"id":"s1","units":3,"updatedAt":"2026-01-01"}]}`)
	b := []byte(`{"data":[{"units":3.0,"id":"s1","updatedAt":"2026-02-02"}]}`)
	assert.True(t, bodiesEqual(a, b, ignore))
	assert.False(t, bodiesEqual(a, []byte(`{"data":[]}`), ignore))
	assert.False(t, bodiesEqual([]byte("<html>"), []byte("<body>"), ignore))
}

func TestCompareTargetSendsSessionCookie(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("auth-session")
		if err != nil || cookie.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"studentCount":3}}`))
	})
	goSrv := httptest.NewServer(handler)
	defer goSrv.Close()
	legacySrv := httptest.NewServer(handler)
	defer legacySrv.Close()

	comp := compareTarget(goSrv.Client(), session{name: "auth-session", value: "tok"}, nil, goSrv.URL, legacySrv.URL, target{Path: "api/dashboard"})
	require.NoError(t, comp.Error)
	assert.Equal(t, http.StatusOK, comp.GoStatus)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
}
