package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T) (*mux.Router, *metrics.Manager) {
	t.Helper()

	library, err := LoadLibrary()
	require.NoError(t, err)

	metricsManager := metrics.NewTestManager()
	r := mux.NewRouter()
	NewHandler(library, NewResponseCache(1, metricsManager)).SetupRoutes(r)
	return r, metricsManager
}

func serve(r *mux.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_SetupRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"list-posts": {
			name:   "list-posts",
			path:   "/posts?category=web3",
			method: "GET",
		},
		"get-post": {
			name:   "get-post",
			path:   "/posts/3",
			method: "GET",
		},
		"adjacent-posts": {
			name:   "adjacent-posts",
			path:   "/posts/3/adjacent",
			method: "GET",
		},
		"post-html": {
			name:   "post-html",
			path:   "/posts/3/html",
			method: "GET",
		},
		"list-case-studies": {
			name:   "list-case-studies",
			path:   "/case-studies",
			method: "GET",
		},
		"get-case-study": {
			name:   "get-case-study",
			path:   "/case-studies/2",
			method: "GET",
		},
		"adjacent-case-studies": {
			name:   "adjacent-case-studies",
			path:   "/case-studies/2/adjacent",
			method: "GET",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			route := r.Get(route.name)
			require.NotNil(t, route)
			require.True(t, route.Match(req, routeMatch), caseName)
		})
	}

	req, err := http.NewRequest(http.MethodPost, "/posts", nil)
	require.NoError(t, err)
	assert.False(t, r.Get("list-posts").Match(req, &mux.RouteMatch{}))
}

func TestHandler_ListPosts(t *testing.T) {
	r, metricsManager := newTestRouter(t)

	rr := serve(r, "/posts")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pkg.ContentType.JSON, rr.Header().Get("Content-Type"))
	var posts []BlogPost
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 7)
	for i, p := range posts {
		assert.Equal(t, i+1, p.ID)
	}

	rr = serve(r, "/posts?category=all")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	assert.Len(t, posts, 7)

	rr = serve(r, "/posts?category=web3")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, BlogCategoryWeb3, p.Category)
	}

	rr = serve(r, "/posts?category=Web3")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	// cached on the second read
	hitsBefore := testutil.ToFloat64(metricsManager.CounterContentCacheHits)
	rr = serve(r, "/posts?category=web3")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metricsManager.CounterContentCacheHits))
	assert.Equal(t, float64(4), testutil.ToFloat64(metricsManager.CounterContentCacheMisses))
}

func TestHandler_ListPostsPreview(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, "/posts?category=devops&view=preview")
	require.Equal(t, http.StatusOK, rr.Code)

	var previews []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &previews))
	require.Len(t, previews, 3)
	for _, p := range previews {
		assert.NotContains(t, p, "content")
		assert.Contains(t, p, "summary")
		assert.Equal(t, "devops", p["category"])
	}
}

func TestHandler_GetPost(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, "/posts/2")
	require.Equal(t, http.StatusOK, rr.Code)
	var post BlogPost
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	assert.Equal(t, 2, post.ID)
	assert.Equal(t, "MultiversX Smart Contract Testing Strategies", post.Title)
	assert.Equal(t, "Morty Smith", post.Author.Name)

	for _, path := range []string{"/posts/0", "/posts/-1", "/posts/8", "/posts/100"} {
		rr = serve(r, path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"success":false,"message":"post not found"}`, rr.Body.String(), path)
	}

	rr = serve(r, "/posts/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"invalid id"}`, rr.Body.String())
}

func TestHandler_AdjacentPosts(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, "/posts/1/adjacent")
	require.Equal(t, http.StatusOK, rr.Code)
	var adjacent Adjacent[BlogPost]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &adjacent))
	assert.Nil(t, adjacent.Previous)
	require.NotNil(t, adjacent.Next)
	assert.Equal(t, 2, adjacent.Next.ID)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["previous"]))

	rr = serve(r, "/posts/7/adjacent")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &adjacent))
	require.NotNil(t, adjacent.Previous)
	assert.Equal(t, 6, adjacent.Previous.ID)
	assert.Nil(t, adjacent.Next)

	rr = serve(r, "/posts/42/adjacent")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(r, "/posts/x/adjacent")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_PostHTML(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, "/posts/1/html")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pkg.ContentType.HTML, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<h1")
	assert.Contains(t, rr.Body.String(), "How to Implement CI/CD Pipelines for Web3 Projects")

	rr = serve(r, "/posts/99/html")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_CaseStudies(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, "/case-studies?category=DevOps")
	require.Equal(t, http.StatusOK, rr.Code)
	var caseStudies []CaseStudy
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &caseStudies))
	require.Len(t, caseStudies, 3)
	for _, cs := range caseStudies {
		assert.Equal(t, CaseStudyCategoryDevOps, cs.Category)
	}

	rr = serve(r, "/case-studies?category=devops")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	rr = serve(r, "/case-studies?view=preview")
	require.Equal(t, http.StatusOK, rr.Code)
	var previews []CaseStudyPreview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &previews))
	require.Len(t, previews, 6)
	assert.Equal(t, []string{"Kubernetes", "Terraform", "AWS"}, previews[0].Technologies)

	rr = serve(r, "/case-studies/4")
	require.Equal(t, http.StatusOK, rr.Code)
	var cs CaseStudy
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cs))
	assert.Equal(t, "Solana Token Tracker", cs.Title)
	assert.Len(t, cs.Process, 5)

	rr = serve(r, "/case-studies/9")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"case study not found"}`, rr.Body.String())

	rr = serve(r, "/case-studies/1.5")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(r, "/case-studies/6/adjacent")
	require.Equal(t, http.StatusOK, rr.Code)
	var adjacent Adjacent[CaseStudy]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &adjacent))
	require.NotNil(t, adjacent.Previous)
	assert.Equal(t, 5, adjacent.Previous.ID)
	assert.Nil(t, adjacent.Next)
}
