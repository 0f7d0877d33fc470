// Package server serves the site over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"impractical.co/lantern"
	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/forms"
	"impractical.co/lantern/internal/pages"
	"impractical.co/lantern/internal/session"
)

// SessionStore keeps the sessions of logged-in visitors. *session.Store is
// a SessionStore.
type SessionStore interface {
	Create(res content.LoginResult, userType string) (session.Session, error)
	Get(id string) (session.Session, error)
	Delete(id string) error
}

var _ SessionStore = (*session.Store)(nil)

// Options configures a Server.
type Options struct {
	Site     *pages.Site
	Client   *content.Client
	Sessions SessionStore

	// ContactEndpoint is where contact forms are posted. Empty means
	// content.EndpointContactMessages.
	ContactEndpoint string

	Cookies session.CookieOptions
	Logger  *slog.Logger
}

// Server handles every request to the site.
type Server struct {
	site     *pages.Site
	client   *content.Client
	sessions SessionStore
	contact  forms.ContactSubmitter
	auth     forms.Authenticator
	cookies  session.CookieOptions
	log      *slog.Logger
}

// New returns a Server using opts.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		site:     opts.Site,
		client:   opts.Client,
		sessions: opts.Sessions,
		contact:  forms.ContactSubmitter{Client: opts.Client, Endpoint: opts.ContactEndpoint},
		auth:     forms.Authenticator{Client: opts.Client},
		cookies:  opts.Cookies,
		log:      logger,
	}
}

// Handler returns the site's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get(pages.HomeRoute.Path, dynamic(s, pages.HomeRoute))
	r.Get("/about", s.about)
	r.Get(pages.IntroductionRoute.Path, dynamic(s, pages.IntroductionRoute))
	r.Get(pages.LeadershipRoute.Path, dynamic(s, pages.LeadershipRoute))
	r.Get("/programs", s.programs)
	r.Get(pages.AdultEducationRoute.Path, dynamic(s, pages.AdultEducationRoute))
	r.Get(pages.GlobalEducationRoute.Path, dynamic(s, pages.GlobalEducationRoute))
	r.Get("/partners", s.partners)
	r.Get(pages.PartnersRoute.Path, dynamic(s, pages.PartnersRoute))
	r.Get(pages.PartnerRoute.Path, s.partner)
	r.Get(pages.NewsRoute.Path, dynamic(s, pages.NewsRoute))

	r.Get("/contact", s.contactPage)
	r.Post("/contact", s.submitContact)
	r.Get("/login", s.loginPage)
	r.Post("/login", s.login)
	r.Post("/logout", s.logout)
	r.Get("/admin/dashboard", s.dashboard(forms.AccountAdmin))
	r.Get("/donor/dashboard", s.dashboard(forms.AccountDonor))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(pages.Static()))))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.NotFound(s.notFound)
	return r
}

// logRequests puts a request-scoped logger in the context and logs each
// request once it's been handled.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.log.With("request_id", middleware.GetReqID(r.Context()))
		ctx := lantern.LoggingContext(r.Context(), log)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.InfoContext(ctx, "handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// render writes page with status. A page that fails to render is replaced
// by the server error page, with a 500 status.
func render[P lantern.Page](s *Server, w http.ResponseWriter, r *http.Request, status int, page P) {
	ctx := r.Context()
	var buf bytes.Buffer
	if err := lantern.Execute(ctx, &buf, s.site, page); err != nil {
		lantern.Logger(ctx).ErrorContext(ctx, "error rendering page", "page", fmt.Sprintf("%T", page), "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		lantern.Render(ctx, &buf, s.site, pages.ServerError(pages.Layout{Path: r.URL.Path}))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		lantern.Logger(ctx).WarnContext(ctx, "error writing response", "error", err)
	}
}

// layout builds the Layout for r. It consumes any pending flash message, so
// it must be called before anything is written to w.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) pages.Layout {
	layout := pages.Layout{Path: r.URL.Path}
	if sess, ok := s.currentSession(r); ok {
		layout.Dashboard = forms.DashboardPath(forms.AccountType(sess.UserType))
	}
	if flash, ok := session.PopFlash(w, r); ok {
		layout = layout.WithToast(pages.Toast{Kind: pages.ToastKind(flash.Kind), Message: flash.Message})
	}
	return layout
}

func (s *Server) currentSession(r *http.Request) (session.Session, bool) {
	id := session.IDFromRequest(r)
	if id == "" {
		return session.Session{}, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			ctx := r.Context()
			lantern.Logger(ctx).ErrorContext(ctx, "error reading session", "error", err)
		}
		return session.Session{}, false
	}
	return sess, true
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	render(s, w, r, http.StatusNotFound, pages.NotFound(s.layout(w, r)))
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	render(s, w, r, http.StatusOK, pages.About(s.layout(w, r)))
}

func (s *Server) programs(w http.ResponseWriter, r *http.Request) {
	render(s, w, r, http.StatusOK, pages.Programs(s.layout(w, r)))
}

func (s *Server) partners(w http.ResponseWriter, r *http.Request) {
	render(s, w, r, http.StatusOK, pages.Partners(s.layout(w, r)))
}
