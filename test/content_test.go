//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/portfolio/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) get(ctx context.Context, path string) (*http.Response, []byte) {
	t := s.T()

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s%s", serverEndpoint, path), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBytes
}

func (s *IntegrationTestSuite) TestPosts() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	resp, body := s.get(ctx, "/posts?category=all")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	var posts []content.BlogPost
	require.NoError(t, json.Unmarshal(body, &posts))
	require.Len(t, posts, 7)

	for _, category := range []string{"devops", "web3", "blockchain"} {
		resp, body = s.get(ctx, "/posts?category="+category)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var filtered []content.BlogPost
		require.NoError(t, json.Unmarshal(body, &filtered))
		assert.NotEmpty(t, filtered, category)
		for _, p := range filtered {
			assert.Equal(t, category, string(p.Category))
		}
	}

	// the same request twice yields the same bytes
	_, first := s.get(ctx, "/posts/5")
	_, second := s.get(ctx, "/posts/5")
	assert.Equal(t, first, second)

	resp, body = s.get(ctx, "/posts/4/adjacent")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjacent content.Adjacent[content.BlogPost]
	require.NoError(t, json.Unmarshal(body, &adjacent))
	require.NotNil(t, adjacent.Previous)
	require.NotNil(t, adjacent.Next)
	assert.Equal(t, 3, adjacent.Previous.ID)
	assert.Equal(t, 5, adjacent.Next.ID)

	resp, _ = s.get(ctx, "/posts/0")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCaseStudies() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	resp, body := s.get(ctx, "/case-studies?category=Web3&view=preview")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var previews []content.CaseStudyPreview
	require.NoError(t, json.Unmarshal(body, &previews))
	require.Len(t, previews, 3)
	for _, p := range previews {
		assert.Equal(t, content.CaseStudyCategoryWeb3, p.Category)
		assert.LessOrEqual(t, len(p.Technologies), 3)
	}

	resp, body = s.get(ctx, "/case-studies/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cs content.CaseStudy
	require.NoError(t, json.Unmarshal(body, &cs))
	assert.Equal(t, "CloudNative Ecosystem", cs.Title)
	require.NotNil(t, cs.Testimonial)

	resp, _ = s.get(ctx, "/case-studies/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	req, err := http.NewRequestWithContext(ctx, "GET", metricsEndpoint, nil)
	require.NoError(t, err)
	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(respBytes), "backend_main_life_signal 1")
}
