package lantern_test

import (
	"context"
	"log/slog"
	"os"

	"impractical.co/lantern"
)

type ResourcesLayout struct{}

func (ResourcesLayout) Templates(_ context.Context) []string {
	return []string{"layout.html.tmpl"}
}

func (ResourcesLayout) LinkCSS(_ context.Context) []lantern.CSSLink {
	return []lantern.CSSLink{
		{Href: "/static/site.css"},
	}
}

func (ResourcesLayout) EmbedJS(_ context.Context) []lantern.JSInline {
	return []lantern.JSInline{
		{Path: "toast.js", PlaceInFooter: true},
	}
}

type ProgramCard struct {
	Title string
}

func (ProgramCard) Templates(_ context.Context) []string {
	return []string{"card.html.tmpl"}
}

func (ProgramCard) EmbedCSS(_ context.Context) []lantern.CSSInline {
	return []lantern.CSSInline{
		{Path: "card.css"},
	}
}

type ProgramsIndexPage struct {
	Layout ResourcesLayout
	Cards  []ProgramCard
}

func (ProgramsIndexPage) Templates(_ context.Context) []string {
	return []string{"programs.html.tmpl"}
}

func (p ProgramsIndexPage) UseComponents(_ context.Context) []lantern.Component {
	components := []lantern.Component{p.Layout}
	for _, card := range p.Cards {
		components = append(components, card)
	}
	return components
}

func (ProgramsIndexPage) Key(_ context.Context) string {
	return "programs.html.tmpl"
}

func (ProgramsIndexPage) ExecutedTemplate(_ context.Context) string {
	return "layout.html.tmpl"
}

func (ProgramsIndexPage) LinkCSS(_ context.Context) []lantern.CSSLink {
	return []lantern.CSSLink{
		{
			Href: "/static/programs.css",
			// the page's stylesheet overrides the site-wide one
			Relation: func(_ context.Context, other lantern.Resource) lantern.ResourceRelationship {
				if link, ok := other.(lantern.CSSLink); ok && link.Href == "/static/site.css" {
					return lantern.ResourceRelationshipAfter
				}
				return lantern.ResourceRelationshipNeutral
			},
		},
	}
}

func (ProgramsIndexPage) EmbedCSS(_ context.Context) []lantern.CSSInline {
	return []lantern.CSSInline{
		{Path: "hero.css"},
	}
}

func (ProgramsIndexPage) LinkJS(_ context.Context) []lantern.JSLink {
	return []lantern.JSLink{
		{Src: "/static/map.js", Defer: true, PlaceInFooter: true},
	}
}

func ExampleRender_resources() {
	var templates = templateFS(map[string]string{
		"programs.html.tmpl": `{{ define "body" }}{{ range .Page.Cards }}{{ template "card" . }}{{ end }}{{ end }}`,
		"card.html.tmpl":     `{{ define "card" }}<div class="card">{{ .Title }}</div>{{ end }}`,
		"layout.html.tmpl": `
<!doctype html>
<html lang="en">
	<head>
		<title>{{ .Site.Title }}</title>
		{{- .CSS -}}
		{{- .HeaderJS -}}
	</head>
	<body>
		{{ block "body" . }}{{ end }}
		{{- .FooterJS -}}
	</body>
</html>`,
		"card.css": ".card { border: 1px solid; }",
		"hero.css": ".hero { height: 20rem; }",
		"toast.js": "setTimeout(dismissToasts, 4000);",
	})

	ctx := lantern.LoggingContext(context.Background(), slog.Default())

	site := MySite{
		CachedSite: lantern.NewCachedSite(templates),
		Title:      "Lantern",
	}
	// both cards embed card.css, but it's only rendered once
	page := ProgramsIndexPage{
		Cards: []ProgramCard{
			{Title: "Adult Education"},
			{Title: "Global Education"},
		},
	}
	lantern.Render(ctx, os.Stdout, site, page)

	//Output:
	// <!doctype html>
	// <html lang="en">
	// 	<head>
	// 		<title>Lantern</title><link rel="stylesheet" href="/static/site.css">
	// <link rel="stylesheet" href="/static/programs.css">
	// <style>
	// .card { border: 1px solid; }
	// </style>
	// <style>
	// .hero { height: 20rem; }
	// </style>
	// </head>
	// 	<body>
	// 		<div class="card">Adult Education</div><div class="card">Global Education</div><script src="/static/map.js" defer></script>
	// <script>
	// setTimeout(dismissToasts, 4000);
	// </script>
	// </body>
	// </html>
}
