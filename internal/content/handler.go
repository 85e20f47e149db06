package content

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/portfolio/internal/telemetry/tracing"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const viewPreview = "preview"

type Handler struct {
	library *Library
	cache   *ResponseCache
}

func NewHandler(library *Library, cache *ResponseCache) *Handler {
	return &Handler{
		library: library,
		cache:   cache,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/posts", handler.handleListPosts).Methods("GET").Name("list-posts")
	router.HandleFunc("/posts/{id}", handler.handleGetPost).Methods("GET").Name("get-post")
	router.HandleFunc("/posts/{id}/adjacent", handler.handleAdjacentPosts).Methods("GET").Name("adjacent-posts")
	router.HandleFunc("/posts/{id}/html", handler.handlePostHTML).Methods("GET").Name("post-html")

	router.HandleFunc("/case-studies", handler.handleListCaseStudies).Methods("GET").Name("list-case-studies")
	router.HandleFunc("/case-studies/{id}", handler.handleGetCaseStudy).Methods("GET").Name("get-case-study")
	router.HandleFunc("/case-studies/{id}/adjacent", handler.handleAdjacentCaseStudies).Methods("GET").Name("adjacent-case-studies")
}

func (handler *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.listPosts")
	defer span.End()

	category := r.URL.Query().Get("category")
	preview := r.URL.Query().Get("view") == viewPreview
	span.SetAttributes(attribute.String("category", category), attribute.Bool("preview", preview))

	cacheKey := fmt.Sprintf("posts::list::%s::%t", category, preview)
	body, err := handler.cache.GetOrRender(cacheKey, func() ([]byte, error) {
		posts := handler.library.Posts.ListByCategory(category)
		if preview {
			return json.Marshal(mapAll(posts, BlogPost.Preview))
		}
		return json.Marshal(posts)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("list posts [%s]: %s", category, err)
		pkg.WriteJSONStatus(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, body)
}

func (handler *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.getPost")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("post.id", id))

	if _, found := handler.library.Posts.GetByID(id); !found {
		pkg.WriteJSONStatus(w, http.StatusNotFound, false, "post not found")
		return
	}

	handler.writeCached(w, fmt.Sprintf("posts::get::%d", id), func() ([]byte, error) {
		post, _ := handler.library.Posts.GetByID(id)
		return json.Marshal(post)
	})
}

func (handler *Handler) handleAdjacentPosts(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.adjacentPosts")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("post.id", id))

	if _, found := handler.library.Posts.GetByID(id); !found {
		pkg.WriteJSONStatus(w, http.StatusNotFound, false, "post not found")
		return
	}

	handler.writeCached(w, fmt.Sprintf("posts::adjacent::%d", id), func() ([]byte, error) {
		return json.Marshal(handler.library.Posts.GetAdjacent(id))
	})
}

func (handler *Handler) handlePostHTML(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.postHTML")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("post.id", id))

	post, found := handler.library.Posts.GetByID(id)
	if !found {
		pkg.WriteJSONStatus(w, http.StatusNotFound, false, "post not found")
		return
	}

	body, err := handler.cache.GetOrRender(fmt.Sprintf("posts::html::%d", id), post.RenderHTML)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("post html [%d]: %s", id, err)
		pkg.WriteJSONStatus(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.HTML, body)
}

func (handler *Handler) handleListCaseStudies(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.listCaseStudies")
	defer span.End()

	category := r.URL.Query().Get("category")
	preview := r.URL.Query().Get("view") == viewPreview
	span.SetAttributes(attribute.String("category", category), attribute.Bool("preview", preview))

	handler.writeCached(w, fmt.Sprintf("case-studies::list::%s::%t", category, preview), func() ([]byte, error) {
		caseStudies := handler.library.CaseStudies.ListByCategory(category)
		if preview {
			return json.Marshal(mapAll(caseStudies, CaseStudy.Preview))
		}
		return json.Marshal(caseStudies)
	})
}

func (handler *Handler) handleGetCaseStudy(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.getCaseStudy")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("case_study.id", id))

	if _, found := handler.library.CaseStudies.GetByID(id); !found {
		pkg.WriteJSONStatus(w, http.StatusNotFound, false, "case study not found")
		return
	}

	handler.writeCached(w, fmt.Sprintf("case-studies::get::%d", id), func() ([]byte, error) {
		caseStudy, _ := handler.library.CaseStudies.GetByID(id)
		return json.Marshal(caseStudy)
	})
}

func (handler *Handler) handleAdjacentCaseStudies(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "contentHandler.adjacentCaseStudies")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("case_study.id", id))

	if _, found := handler.library.CaseStudies.GetByID(id); !found {
		pkg.WriteJSONStatus(w, http.StatusNotFound, false, "case study not found")
		return
	}

	handler.writeCached(w, fmt.Sprintf("case-studies::adjacent::%d", id), func() ([]byte, error) {
		return json.Marshal(handler.library.CaseStudies.GetAdjacent(id))
	})
}

func (handler *Handler) writeCached(w http.ResponseWriter, cacheKey string, render func() ([]byte, error)) {
	body, err := handler.cache.GetOrRender(cacheKey, render)
	if err != nil {
		log.Errorf("render [%s]: %s", cacheKey, err)
		pkg.WriteJSONStatus(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, body)
}

// parseID reads the {id} path var; on failure it writes the 400 reply itself.
func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Tracef("invalid content id [%s]: %s", idStr, err)
		pkg.WriteJSONStatus(w, http.StatusBadRequest, false, "invalid id")
		return 0, false
	}
	return id, true
}

func mapAll[T, P any](records []T, preview func(T) P) []P {
	out := make([]P, 0, len(records))
	for _, r := range records {
		out = append(out, preview(r))
	}
	return out
}
