package lantern

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

var tracer = otel.Tracer("impractical.co/lantern")

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of filepaths (or fs.Glob patterns) to
	// html/template contents that need to be parsed before the component
	// can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. These Components will automatically
// have the appropriate methods called if they implement any of the optional
// interfaces.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the map of functions available to them when rendering.
type FuncMapExtender interface {
	FuncMap(context.Context) template.FuncMap
}

// Page is an interface for a page that can be passed to Render. It defines a
// single logical page of the site, composed of one or more Components. It
// should contain all the information needed to render the Components to
// HTML.
type Page interface {
	Component

	// Key is a unique key to use when caching this page so it doesn't need
	// to be re-parsed. A good key is consistent, but unique per set of
	// templates.
	Key(context.Context) string

	// ExecutedTemplate is the template that needs to actually be executed
	// when rendering the page.
	//
	// This is usually not the template for the Component defining the
	// page; it's usually the layout template that the page fills blocks
	// in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to a page when rendering it.
type RenderData[SiteType Site, PageType Page] struct {
	// Site is an instance of the Site type, containing all the
	// configuration and information about a Site. This can be used to
	// avoid passing global configuration options to every single page.
	Site SiteType

	// Page is the information for a specific page, embedded in that page's
	// Page type.
	Page PageType

	// CSS holds the <link> and <style> elements for every stylesheet the
	// page's components declare, in order.
	CSS template.HTML

	// HeaderJS holds the <script> elements that belong in the document
	// head.
	HeaderJS template.HTML

	// FooterJS holds the <script> elements that belong at the end of the
	// document body.
	FooterJS template.HTML
}

// Render renders the passed Page to the Writer. If it can't, a server error
// page is written instead. If the Site implements ServerErrorPager, that will
// be rendered; if not, a simple text page indicating a server error will be
// written. Nothing from a failed render reaches out.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) {
	ctx, span := tracer.Start(ctx, "lantern.Render", trace.WithAttributes(
		attribute.String("lantern.page.key", page.Key(ctx)),
		attribute.String("lantern.page.type", fmt.Sprintf("%T", page)),
	))
	defer span.End()

	var buf bytes.Buffer
	err := Execute(ctx, &buf, site, page)
	if err == nil {
		writeOut(ctx, out, &buf)
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "render failed")
	Logger(ctx).ErrorContext(ctx, "error rendering page", "page", fmt.Sprintf("%T", page), "error", err)

	if pager, ok := Site(site).(ServerErrorPager); ok {
		buf.Reset()
		err = Execute(ctx, &buf, site, pager.ServerErrorPage(ctx))
		if err == nil {
			writeOut(ctx, out, &buf)
			return
		}
		// if we can't do that, everything's doomed, doomed, doomed
		// just log it and fall through to the plain message
		Logger(ctx).ErrorContext(ctx, "error rendering server error page", "error", err)
	}

	_, err = out.Write([]byte("Server error."))
	if err != nil {
		Logger(ctx).ErrorContext(ctx, "error writing server error message", "error", err)
	}
}

func writeOut(ctx context.Context, out io.Writer, buf *bytes.Buffer) {
	if _, err := buf.WriteTo(out); err != nil {
		Logger(ctx).ErrorContext(ctx, "error writing rendered page", "error", err)
	}
}

// Execute renders page to output and returns any error it encounters along
// the way. Most callers want Render, which falls back to an error page.
func Execute[SiteType Site, PageType Page](ctx context.Context, output io.Writer, site SiteType, page PageType) error {
	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	graphs := buildGraphs(ctx, getRecursiveComponents(ctx, page))
	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
	}
	css, err := graphs.css.walk()
	if err != nil {
		return fmt.Errorf("error ordering CSS for %T: %w", page, err)
	}
	headJS, err := graphs.headJS.walk()
	if err != nil {
		return fmt.Errorf("error ordering header JavaScript for %T: %w", page, err)
	}
	footJS, err := graphs.footJS.walk()
	if err != nil {
		return fmt.Errorf("error ordering footer JavaScript for %T: %w", page, err)
	}
	if data.CSS, err = renderCSS(ctx, site, css); err != nil {
		return err
	}
	if data.HeaderJS, err = renderJS(ctx, site, headJS); err != nil {
		return err
	}
	if data.FooterJS, err = renderJS(ctx, site, footJS); err != nil {
		return err
	}

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(output, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page) (*template.Template, error) {
	key := page.Key(ctx)
	if cache, ok := site.(TemplateCacher); ok {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if cache, ok := site.(TemplateCacher); ok {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

func readResource(ctx context.Context, site Site, path string) (string, error) {
	cache, cacheable := site.(ResourceCacher)
	if cacheable {
		if cached := cache.GetCachedResource(ctx, path); cached != nil {
			return *cached, nil
		}
	}
	contents, err := fs.ReadFile(site.TemplateDir(ctx), path)
	if err != nil {
		return "", fmt.Errorf("error reading resource %q: %w", path, err)
	}
	if cacheable {
		cache.SetCachedResource(ctx, path, string(contents))
	}
	return string(contents), nil
}

func joinHTML(elements []string) template.HTML {
	if len(elements) < 1 {
		return ""
	}
	return template.HTML(strings.Join(elements, "\n") + "\n") // #nosec G203
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		children := uses.UseComponents(ctx)
		for _, child := range children {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		paths := comp.Templates(ctx)
		for _, path := range paths {
			if _, ok := seen[path]; !ok {
				results = append(results, path)
				seen[path] = struct{}{}
			}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		for _, file := range list {
			if _, ok := seen[file]; ok {
				continue
			}
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		sub := tmpl.New(file)
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = sub.Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in `page`
// overriding the values in `in` if they have the same keys.
func mergeFuncMaps(in template.FuncMap, page template.FuncMap) template.FuncMap {
	res := template.FuncMap{}
	for k, v := range in {
		res[k] = v
	}
	for k, v := range page {
		res[k] = v
	}
	return res
}
