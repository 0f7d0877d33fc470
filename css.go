package lantern

import (
	"context"
	"html/template"
)

// CSSLink is a stylesheet loaded through a <link> element.
type CSSLink struct {
	// Href is the URL of the stylesheet.
	Href string

	// Relation, if set, is consulted against every other CSS resource on
	// the page to decide whether this one must render before or after
	// it. Setting Relation turns off implicit ordering for this link.
	Relation RelationCalculator

	// DisableImplicitOrdering stops this link from being held after the
	// resource declared before it by the same Component.
	DisableImplicitOrdering bool
}

// ResourceID fulfills the Resource interface.
func (c CSSLink) ResourceID() string { return "CSSLink(" + c.Href + ")" }

func (c CSSLink) relation() RelationCalculator { return c.Relation }

func (c CSSLink) implicitlyOrdered() bool {
	return c.Relation == nil && !c.DisableImplicitOrdering
}

func (CSSLink) isLink() bool { return true }

// CSSInline is a stylesheet embedded in a <style> element. Its contents are
// read from Path in the Site's template fs.FS.
type CSSInline struct {
	Path string

	// Relation, if set, is consulted against every other CSS resource on
	// the page. Setting it turns off implicit ordering for this block.
	Relation RelationCalculator

	DisableImplicitOrdering bool
}

// ResourceID fulfills the Resource interface.
func (c CSSInline) ResourceID() string { return "CSSInline(" + c.Path + ")" }

func (c CSSInline) relation() RelationCalculator { return c.Relation }

func (c CSSInline) implicitlyOrdered() bool {
	return c.Relation == nil && !c.DisableImplicitOrdering
}

func (CSSInline) isLink() bool { return false }

// CSSEmbedder is an interface that Components can fulfill to include some CSS
// that should be embedded directly into the rendered HTML. The rendered
// <style> elements will be made available to the template as part of .CSS.
type CSSEmbedder interface {
	EmbedCSS(context.Context) []CSSInline
}

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The
// rendered elements will be made available to the template as part of .CSS.
type CSSLinker interface {
	LinkCSS(context.Context) []CSSLink
}

func renderCSS(ctx context.Context, site Site, resources []Resource) (template.HTML, error) {
	var out []string
	for _, res := range resources {
		switch css := res.(type) {
		case CSSLink:
			out = append(out, `<link rel="stylesheet" href="`+template.HTMLEscapeString(css.Href)+`">`)
		case CSSInline:
			contents, err := readResource(ctx, site, css.Path)
			if err != nil {
				return "", err
			}
			out = append(out, "<style>\n"+contents+"\n</style>")
		}
	}
	return joinHTML(out), nil
}
