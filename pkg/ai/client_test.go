package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretSendsPromptAndParsesAnswer(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  a reading  "}}]}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	date := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)

	answer, err := c.Interpret(context.Background(), "I was flying", date, "Full")
	require.NoError(t, err)
	assert.Equal(t, "a reading", answer, "answer should be trimmed")

	assert.Equal(t, "Bearer sk-test", gotAuth)
	require.Len(t, gotReq.Messages, 2, "system prompt plus one user turn")
	assert.Equal(t, "system", gotReq.Messages[0]["role"])
	assert.Equal(t, "user", gotReq.Messages[1]["role"])
	assert.Contains(t, gotReq.Messages[1]["content"], "I was flying")
	assert.Contains(t, gotReq.Messages[1]["content"], "Moon phase: Full")
	assert.Contains(t, gotReq.Messages[1]["content"], "Sat Feb 28 2026")
}

func TestConverseSendsFullHistory(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello again"}}]}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	turns := []Turn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "tell me more"},
	}

	answer, err := c.Converse(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "hello again", answer)
	require.Len(t, gotReq.Messages, 4)
	assert.Equal(t, "tell me more", gotReq.Messages[3]["content"])
}

func TestNoAPIKey(t *testing.T) {
	c := NewClient("")

	_, err := c.Interpret(context.Background(), "dream", time.Now(), "Full")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	assert.ErrorIs(t, c.Verify(context.Background()), ErrNoAPIKey)
}

func TestRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	_, err := c.Interpret(context.Background(), "dream", time.Now(), "Full")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	_, err := c.Converse(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestEmptyChoicesIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	_, err := c.Converse(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestAPIErrorBodyIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"model overloaded","type":"server_error"}}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	_, err := c.Converse(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestVerify(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test").WithBase(srv.URL)
	require.NoError(t, c.Verify(context.Background()))
	assert.Equal(t, "/models", gotPath)
}

func TestVerifyRejectsBadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key").WithBase(srv.URL)
	assert.Error(t, c.Verify(context.Background()))
}
