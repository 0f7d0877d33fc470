package pages

import (
	"context"
)

// FailureMessage is shown when a page's content couldn't be loaded and the
// Content API didn't say why.
const FailureMessage = "We couldn't load this page right now. Please try again later."

// Route describes a page whose content comes from the Content API.
type Route[T any] struct {
	// Name identifies the route. It's used as the template cache key, so
	// it must be unique.
	Name string

	// Path is the URL path the route is served at.
	Path string

	// Template defines the "content" block for the route.
	Template string

	// Endpoint is the Content API endpoint the content is fetched from.
	Endpoint string

	// Crumbs are the breadcrumbs between the home page and this page.
	Crumbs []Crumb

	// Defaults fills in whatever the fetched content is missing. It must
	// not modify its argument in place.
	Defaults func(T) T

	// Hero builds the page's banner from its content, after Defaults is
	// applied.
	Hero func(T) Hero
}

// Dynamic is a page rendering the content of a Route.
type Dynamic[T any] struct {
	Base

	Content T

	// Failed is set when the content couldn't be loaded.
	Failed bool

	name     string
	template string
}

func (d Dynamic[T]) Templates(_ context.Context) []string {
	return []string{d.template}
}

func (d Dynamic[T]) Key(_ context.Context) string {
	return "route:" + d.name
}

// Page returns the page showing fetched, with the route's defaults filled
// in.
func (r Route[T]) Page(layout Layout, fetched T) Dynamic[T] {
	filled := fetched
	if r.Defaults != nil {
		filled = r.Defaults(fetched)
	}
	var hero Hero
	if r.Hero != nil {
		hero = r.Hero(filled)
	}
	return Dynamic[T]{
		Base:     newBase(layout, hero, r.breadcrumbs(hero.Title)),
		Content:  filled,
		name:     r.Name,
		template: r.Template,
	}
}

// Failure returns the page shown when the route's content couldn't be
// loaded. message is shown to the visitor; an empty message shows
// FailureMessage.
func (r Route[T]) Failure(layout Layout, message string) Dynamic[T] {
	if message == "" {
		message = FailureMessage
	}
	var zero T
	page := r.Page(layout, zero)
	page.Failed = true
	page.Shell.Error = message
	return page
}

func (r Route[T]) breadcrumbs(title string) []Crumb {
	if r.Path == "/" {
		return nil
	}
	return trail(title, r.Crumbs...)
}
