package server

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"impractical.co/lantern"
	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/pages"
)

// dynamic serves route, fetching its content once per request. Content
// that can't be fetched renders the route's failure state with a 502.
func dynamic[T any](s *Server, route pages.Route[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layout := s.layout(w, r)
		data, err := content.Get[T](r.Context(), s.client, route.Endpoint)
		if err != nil {
			logFetchError(r, route.Endpoint, err)
			render(s, w, r, http.StatusBadGateway, route.Failure(layout, content.Message(err, "")))
			return
		}
		render(s, w, r, http.StatusOK, route.Page(layout, data))
	}
}

// partner serves the page of the partner institution named by the
// partnerSlug URL parameter.
func (s *Server) partner(w http.ResponseWriter, r *http.Request) {
	layout := s.layout(w, r)
	route := pages.PartnerRoute
	partners, err := content.Get[[]content.PartnerInstitution](r.Context(), s.client, route.Endpoint)
	if err != nil {
		logFetchError(r, route.Endpoint, err)
		render(s, w, r, http.StatusBadGateway, route.Failure(layout, content.Message(err, "")))
		return
	}
	// chi hands back the escaped segment when the path had to be encoded
	slug, err := url.PathUnescape(chi.URLParam(r, "partnerSlug"))
	if err != nil {
		render(s, w, r, http.StatusNotFound, pages.NotFound(layout))
		return
	}
	found, ok := pages.FindPartner(partners, slug)
	if !ok {
		render(s, w, r, http.StatusNotFound, pages.NotFound(layout))
		return
	}
	render(s, w, r, http.StatusOK, route.Page(layout, found))
}

func logFetchError(r *http.Request, endpoint string, err error) {
	ctx := r.Context()
	lantern.Logger(ctx).WarnContext(ctx, "error fetching page content", "endpoint", endpoint, "error", err)
}
