package router

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewareDisabledWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Prefix: "test", WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code != 200 {
			t.Fatalf("request %d: nil client must pass through, got %d", i, w.Code)
		}
	}
}

func TestRateLimitMiddlewareDisabledWithZeroRule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{}, nil))
	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	if w.Code != 200 {
		t.Fatalf("zero rule must pass through, got %d", w.Code)
	}
}

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	keyFunc := KeyByIPAndJSONField("email")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":" User@Example.Com "}`))
	c.Request.Header.Set("Content-Type", "application/json")

	key := keyFunc(c)
	if !strings.HasPrefix(key, "user@example.com|") {
		t.Fatalf("key should start with the lowercased email, got %q", key)
	}

	// The body must still be readable by the handler afterwards.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !strings.Contains(string(body), "User@Example.Com") {
		t.Fatalf("body was consumed by the key func: %q", string(body))
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	keyFunc := KeyByIPAndJSONField("email")

	cases := []string{
		``,
		`not json`,
		`{"other":"field"}`,
		`{"email":42}`,
	}
	for _, payload := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/login", strings.NewReader(payload))

		key := keyFunc(c)
		if strings.Contains(key, "|") {
			t.Fatalf("payload %q: want bare ip key, got %q", payload, key)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{int64(7), 7, true},
		{int(3), 3, true},
		{float64(2), 2, true},
		{"nope", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("toInt64(%v) want (%d,%v) got (%d,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}
