package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	t.Run("forwarded-for wins", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/register", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 70.41.3.18")
		r.Header.Set("X-Real-Ip", "198.51.100.2")
		assert.Equal(t, "203.0.113.9", ClientIP(r))
	})

	t.Run("real-ip fallback", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/register", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		r.Header.Set("X-Real-Ip", "198.51.100.2")
		assert.Equal(t, "198.51.100.2", ClientIP(r))
	})

	t.Run("socket address fallback", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/register", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		assert.Equal(t, "10.0.0.1", ClientIP(r))
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/register", nil)
		r.Header.Set("X-Forwarded-For", "  203.0.113.9 , 70.41.3.18")
		assert.Equal(t, "203.0.113.9", ClientIP(r))
	})

	t.Run("empty when nothing set", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/register", nil)
		r.RemoteAddr = ""
		assert.Equal(t, "", ClientIP(r))
	})
}
