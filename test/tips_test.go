package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/healthmetrics/internal/tips"
)

func (s *IntegrationTestSuite) tipsRequest(ctx context.Context, t *testing.T, method, path, sessionToken string) *http.Response {
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if sessionToken != "" {
		req.Header.Set(tips.SessionHeaderName, sessionToken)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *IntegrationTestSuite) carouselTip(ctx context.Context, t *testing.T, method, path, sessionToken string) (tips.CarouselTipResponse, string) {
	resp := s.tipsRequest(ctx, t, method, path, sessionToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var tipResp tips.CarouselTipResponse
	require.NoError(t, json.Unmarshal(respBytes, &tipResp))
	return tipResp, resp.Header.Get(tips.SessionHeaderName)
}

func (s *IntegrationTestSuite) TestTipsRandom() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 10; i++ {
		resp := s.tipsRequest(ctx, t, "GET", "/tips/random", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		var tipResp tips.TipResponse
		require.NoError(t, json.Unmarshal(respBytes, &tipResp))
		assert.Contains(t, testTips, tipResp.Tip)
		// random tips are served without a carousel session
		assert.Empty(t, resp.Header.Get(tips.SessionHeaderName))
	}
}

func (s *IntegrationTestSuite) TestTipsCarousel() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// no session token sent, the server starts a fresh session
	tip, token := s.carouselTip(ctx, t, "POST", "/tips/next", "")
	require.NotEmpty(t, token)
	assert.Equal(t, 1, tip.Index)
	assert.Equal(t, testTips[1], tip.Tip)

	tip, _ = s.carouselTip(ctx, t, "POST", "/tips/next", token)
	assert.Equal(t, 2, tip.Index)
	assert.Equal(t, testTips[2], tip.Tip)

	// current reads the cursor without moving it
	tip, _ = s.carouselTip(ctx, t, "GET", "/tips/current", token)
	assert.Equal(t, 2, tip.Index)
	assert.Equal(t, testTips[2], tip.Tip)

	tip, _ = s.carouselTip(ctx, t, "POST", "/tips/prev", token)
	assert.Equal(t, 1, tip.Index)
	assert.Equal(t, testTips[1], tip.Tip)

	// prev stops at the first tip
	tip, _ = s.carouselTip(ctx, t, "POST", "/tips/prev", token)
	assert.Equal(t, 0, tip.Index)
	tip, _ = s.carouselTip(ctx, t, "POST", "/tips/prev", token)
	assert.Equal(t, 0, tip.Index)
	assert.Equal(t, testTips[0], tip.Tip)

	// next has no upper bound, the served tip wraps around the list
	for i := 1; i <= len(testTips)+1; i++ {
		tip, _ = s.carouselTip(ctx, t, "POST", "/tips/next", token)
		assert.Equal(t, i, tip.Index)
	}
	assert.Equal(t, len(testTips)+1, tip.Index)
	assert.Equal(t, testTips[1], tip.Tip)

	// an unknown token gets a fresh session instead of an error
	tip, newToken := s.carouselTip(ctx, t, "GET", "/tips/current", "long-gone-session-token")
	require.NotEmpty(t, newToken)
	assert.NotEqual(t, "long-gone-session-token", newToken)
	assert.Equal(t, 0, tip.Index)
	assert.Equal(t, testTips[0], tip.Tip)
}

func (s *IntegrationTestSuite) TestTipsReload() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postReload := func(t *testing.T, secret string) *http.Response {
		req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/tips/reload", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		if secret != "" {
			req.Header.Set("X-Admin-Secret", secret)
		}

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("no secret", func(t *testing.T) {
		resp := postReload(t, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		resp := postReload(t, "definitely-not-it")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("good secret reloads the tips file", func(t *testing.T) {
		freshTips := []string{"a freshly added tip", "another freshly added tip"}
		require.NoError(t, os.WriteFile(s.tipsCsvPath, []byte(strings.Join(freshTips, "\n")+"\n"), 0o600))

		resp := postReload(t, testAdminSecret)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "reloaded", string(respBytes))

		// a fresh carousel session serves the new list
		tip, token := s.carouselTip(ctx, t, "GET", "/tips/current", "")
		require.NotEmpty(t, token)
		assert.Equal(t, 0, tip.Index)
		assert.Equal(t, freshTips[0], tip.Tip)
	})
}
