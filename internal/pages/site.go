package pages

import (
	"context"
	"embed"
	"html/template"
	"io/fs"

	"impractical.co/lantern"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates returns the embedded templates and inline resources.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the embedded files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NavItem is a link in the site navigation.
type NavItem struct {
	Label string
	Href  string
}

// DefaultNav is the site navigation.
var DefaultNav = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "About", Href: "/about"},
	{Label: "Programs", Href: "/programs"},
	{Label: "Partners", Href: "/partners"},
	{Label: "News", Href: "/news"},
	{Label: "Contact", Href: "/contact"},
}

var _ lantern.Site = &Site{}
var _ lantern.ServerErrorPager = &Site{}
var _ lantern.FuncMapExtender = &Site{}

// Site renders every page of the site.
type Site struct {
	*lantern.CachedSite

	Name string
	Nav  []NavItem
}

// NewSite returns a Site reading its templates from templates. A nil
// templates uses the embedded ones.
func NewSite(name string, templates fs.FS) *Site {
	if templates == nil {
		templates = Templates()
	}
	return &Site{
		CachedSite: lantern.NewCachedSite(templates),
		Name:       name,
		Nav:        DefaultNav,
	}
}

// FuncMap makes markdown, excerpt and year available to every template.
func (*Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"excerpt":  Excerpt,
		"year":     year,
	}
}

// ServerErrorPage is rendered when another page fails to.
func (*Site) ServerErrorPage(_ context.Context) lantern.Page {
	return ServerError(Layout{})
}
