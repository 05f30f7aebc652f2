package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/logging"
	"github.com/newsdesk-lab/copydesk/pkg/utils/safe"
)

// Server is the web-handler collaborator over the workflow facade. It
// resolves the acting user, calls the facade and maps errors to HTTP
// statuses; all editorial policy lives behind the facade.
type Server struct {
	router *chi.Mux
	uc     *usecase.Workflow
}

func New(uc *usecase.Workflow) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.putUser)
			r.Get("/", s.listUsers)
			r.Get("/{userID}", s.getUser)
		})

		r.Route("/stories", func(r chi.Router) {
			r.Post("/", s.createStory)
			r.Get("/", s.listStories)
			r.Route("/{storyID}", func(r chi.Router) {
				r.Get("/", s.getStory)
				r.Patch("/", s.updateStory)
				r.Get("/transitions", s.storyTransitions)
				r.Post("/transition", s.applyTransition)
				r.Route("/revisions", func(r chi.Router) {
					r.Get("/", s.listRevisions)
					r.Post("/", s.openRevision)
					r.Post("/resolve-all", s.resolveAllRevisions)
				})
			})
		})

		r.Route("/revisions", func(r chi.Router) {
			r.Patch("/{revisionID}/resolve", s.resolveRevision)
		})

		r.Route("/policy", func(r chi.Router) {
			r.Get("/transitions", s.policyTransitions)
			r.Get("/capabilities", s.policyCapabilities)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
