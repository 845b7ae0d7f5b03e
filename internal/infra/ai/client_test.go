package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariseDefects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Hoist rope wear")

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":" The crane is serviceable. "}}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "gpt-4o-mini", zerolog.Nop())
	got, err := c.SummariseDefects(context.Background(), "Overhead gantry 10t", []string{"[major] Hoist rope wear beyond discard"})

	require.NoError(t, err)
	assert.Equal(t, "The crane is serviceable.", got)
}

func TestSummariseDefectsEmptyFindings(t *testing.T) {
	c := New("http://127.0.0.1:1", "k", "m", zerolog.Nop())
	_, err := c.SummariseDefects(context.Background(), "x", nil)
	require.Error(t, err)
}

func TestSummariseDefectsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", zerolog.Nop())
	_, err := c.SummariseDefects(context.Background(), "x", []string{"finding"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
