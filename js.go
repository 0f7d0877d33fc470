package lantern

import (
	"context"
	"html/template"
)

// JSLink is a script loaded through a <script> element with a src attribute.
type JSLink struct {
	Src string

	// Defer adds the defer attribute to the element.
	Defer bool

	// PlaceInFooter renders the script in .FooterJS instead of .HeaderJS.
	PlaceInFooter bool

	// Relation, if set, is consulted against every other script in the
	// same place (header or footer). Setting it turns off implicit
	// ordering for this script.
	Relation RelationCalculator

	DisableImplicitOrdering bool
}

// ResourceID fulfills the Resource interface.
func (j JSLink) ResourceID() string { return "JSLink(" + j.Src + ")" }

func (j JSLink) relation() RelationCalculator { return j.Relation }

func (j JSLink) implicitlyOrdered() bool {
	return j.Relation == nil && !j.DisableImplicitOrdering
}

func (JSLink) isLink() bool { return true }

// JSInline is a script embedded in a <script> element. Its contents are read
// from Path in the Site's template fs.FS.
type JSInline struct {
	Path string

	PlaceInFooter bool

	Relation RelationCalculator

	DisableImplicitOrdering bool
}

// ResourceID fulfills the Resource interface.
func (j JSInline) ResourceID() string { return "JSInline(" + j.Path + ")" }

func (j JSInline) relation() RelationCalculator { return j.Relation }

func (j JSInline) implicitlyOrdered() bool {
	return j.Relation == nil && !j.DisableImplicitOrdering
}

func (JSInline) isLink() bool { return false }

// JSEmbedder is an interface that Components can fulfill to include some
// JavaScript that should be embedded directly into the rendered HTML.
type JSEmbedder interface {
	EmbedJS(context.Context) []JSInline
}

// JSLinker is an interface that Components can fulfill to include some
// JavaScript that should be loaded separately from the HTML document.
type JSLinker interface {
	LinkJS(context.Context) []JSLink
}

func renderJS(ctx context.Context, site Site, resources []Resource) (template.HTML, error) {
	var out []string
	for _, res := range resources {
		switch js := res.(type) {
		case JSLink:
			attrs := ""
			if js.Defer {
				attrs = " defer"
			}
			out = append(out, `<script src="`+template.HTMLEscapeString(js.Src)+`"`+attrs+`></script>`)
		case JSInline:
			contents, err := readResource(ctx, site, js.Path)
			if err != nil {
				return "", err
			}
			out = append(out, "<script>\n"+contents+"\n</script>")
		}
	}
	return joinHTML(out), nil
}
