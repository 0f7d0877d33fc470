package lantern_test

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"impractical.co/lantern"
)

type CachedSiteFoo struct{}

func (CachedSiteFoo) Templates(_ context.Context) []string {
	return []string{"base.tmpl", "foo.tmpl"}
}

func (CachedSiteFoo) Key(_ context.Context) string {
	return "foo.tmpl"
}

func (CachedSiteFoo) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

type CachedSiteBar struct {
	IncludeBaz bool
}

func (bar CachedSiteBar) Templates(_ context.Context) []string {
	templates := []string{"base.tmpl", "bar.tmpl"}
	if bar.IncludeBaz {
		templates = append(templates, "baz.tmpl")
	}
	return templates
}

func (CachedSiteBar) Key(_ context.Context) string {
	return "bar.tmpl"
}

func (CachedSiteBar) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

func cachedSiteFS() fstest.MapFS {
	return templateFS(map[string]string{
		"foo.tmpl":  `{{ define "template_name" }}foo.tmpl{{ end }}`,
		"bar.tmpl":  `{{ define "template_name" }}bar.tmpl{{ if .Page.IncludeBaz }} {{ block "variable_include" . }}{{ end }}{{ end }}{{ end }}`,
		"baz.tmpl":  `{{ define "variable_include" }}included baz.tmpl{{ end }}`,
		"base.tmpl": `{{ block "template_name" . }}base.tmpl{{ end }}`,
	})
}

func TestCachedSite(t *testing.T) {
	t.Parallel()

	ctx := lantern.LoggingContext(context.Background(), slog.Default())
	fsys := cachedSiteFS()
	site := lantern.NewCachedSite(fsys)
	renderChangeAndRerender(t, ctx, fsys, CachedSiteFoo{}, site, "foo.tmpl", "foo.tmpl")
	renderChangeAndRerender(t, ctx, fsys, CachedSiteBar{}, site, "bar.tmpl", "bar.tmpl")
	// the key is the same, so the cached parse without baz.tmpl is used
	renderChangeAndRerender(t, ctx, fsys, CachedSiteBar{IncludeBaz: true}, site, "bar.tmpl", "bar.tmpl ")
}

func TestCachedSiteReset(t *testing.T) {
	t.Parallel()

	ctx := lantern.LoggingContext(context.Background(), slog.Default())
	fsys := cachedSiteFS()
	site := lantern.NewCachedSite(fsys)

	var out bytes.Buffer
	lantern.Render(ctx, &out, site, CachedSiteFoo{})
	if got := out.String(); got != "foo.tmpl" {
		t.Fatalf("Expected to get %q, got %q", "foo.tmpl", got)
	}

	fsys["foo.tmpl"].Data = []byte(`{{ define "template_name" }}changed foo.tmpl{{ end }}`)
	site.Reset()

	out.Reset()
	lantern.Render(ctx, &out, site, CachedSiteFoo{})
	if got := out.String(); got != "changed foo.tmpl" {
		t.Errorf("Expected to get %q after reset, got %q", "changed foo.tmpl", got)
	}
}

func renderChangeAndRerender(t *testing.T, ctx context.Context, fs fstest.MapFS, page lantern.Page, site lantern.Site, file, expected string) {
	t.Helper()

	var out bytes.Buffer
	lantern.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q, got %q", expected, output)
	}
	out.Reset()
	oldData := slices.Clone(fs[file].Data)
	fs[file].Data = []byte(strings.ReplaceAll(string(fs[file].Data), file, "changed-"+file))
	lantern.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q after modifying underlying data, got %q", expected, output)
	}
	fs[file].Data = oldData
}
