// Package pages holds every page of the site and the pieces they share.
//
// Every page is a lantern.Page made of the same two components: a Layout,
// which is the HTML document around the page, and a PageTemplate, which is
// the breadcrumb trail, hero banner and content slot inside it. Pages fill
// the slot by defining a "content" template.
package pages

import (
	"context"

	"impractical.co/lantern"
)

// executedTemplate is the template every page executes. Pages fill in the
// blocks it leaves open.
const executedTemplate = "layout.html.tmpl"

// Crumb is one step of a breadcrumb trail. The last crumb is the current
// page and has no Href.
type Crumb struct {
	Label string
	Href  string
}

// trail returns a breadcrumb trail starting at the home page, running
// through parents, and ending at current.
func trail(current string, parents ...Crumb) []Crumb {
	crumbs := make([]Crumb, 0, len(parents)+2)
	crumbs = append(crumbs, Crumb{Label: "Home", Href: "/"})
	crumbs = append(crumbs, parents...)
	return append(crumbs, Crumb{Label: current})
}

// Hero is the banner at the top of a page.
type Hero struct {
	Title    string
	Subtitle string
	Image    string
}

// PageTemplate is the shell every page renders in. When Error is set, it is
// shown in place of the page's content.
type PageTemplate struct {
	Breadcrumbs []Crumb
	Hero        Hero
	Error       string
}

func (PageTemplate) Templates(_ context.Context) []string {
	return []string{"page_template.html.tmpl"}
}

// ToastKind is the severity of a Toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a short-lived notification shown at the top of the page.
type Toast struct {
	Kind    ToastKind
	Message string
}

func (Toast) Templates(_ context.Context) []string {
	return []string{"toast.html.tmpl"}
}

// Layout is the HTML document every page is rendered in: the head, the site
// navigation, any toasts, and the footer.
type Layout struct {
	// Title is the page's title, without the site name.
	Title string

	// Path is the path of the current request, used to mark the active
	// navigation item.
	Path string

	// Dashboard is the signed-in visitor's dashboard path. It's empty for
	// visitors who haven't logged in.
	Dashboard string

	Toasts []Toast
}

// WithToast returns a copy of l that also shows t.
func (l Layout) WithToast(t Toast) Layout {
	l.Toasts = append(append([]Toast(nil), l.Toasts...), t)
	return l
}

func (Layout) Templates(_ context.Context) []string {
	return []string{"layout.html.tmpl"}
}

func (Layout) UseComponents(_ context.Context) []lantern.Component {
	return []lantern.Component{Toast{}}
}

func (Layout) LinkCSS(_ context.Context) []lantern.CSSLink {
	return []lantern.CSSLink{
		{Href: "/static/site.css"},
	}
}

func (Layout) EmbedJS(_ context.Context) []lantern.JSInline {
	return []lantern.JSInline{
		{Path: "toast.js", PlaceInFooter: true},
	}
}

// Base is embedded in every page. It wires up the Layout and PageTemplate.
type Base struct {
	Layout Layout
	Shell  PageTemplate
}

func (b Base) UseComponents(_ context.Context) []lantern.Component {
	return []lantern.Component{b.Layout, b.Shell}
}

func (Base) ExecutedTemplate(_ context.Context) string {
	return executedTemplate
}

func newBase(layout Layout, hero Hero, crumbs []Crumb) Base {
	if layout.Title == "" {
		layout.Title = hero.Title
	}
	return Base{
		Layout: layout,
		Shell: PageTemplate{
			Breadcrumbs: crumbs,
			Hero:        hero,
		},
	}
}
