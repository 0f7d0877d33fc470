// Package lantern renders the pages of the Lantern website. It is an HTML
// rendering framework built on top of the html/template package.
//
// lantern is organized around Components and Pages. A Component is some piece
// of the HTML document that you want included in the page's output. A Page is
// a Component that gets rendered itself rather than being included in another
// Component. The homepage is a Page; the navbar is a Component, as is the
// PageTemplate shell (breadcrumb, hero banner, content slot) that every page
// shares.
//
// Each server has a single Site, which provides the fs.FS containing the
// templates that Components use. The Site is available at render time as
// .Site, so it can hold configuration data used across all pages, and the
// page itself is available as .Page.
//
// Components tend to be structs, with properties for whatever data they want
// to pass to their templates. When a Component relies on another Component,
// make an instance of it a property of the parent struct and return it from
// UseComponents, so the templates, stylesheets, scripts and template
// functions it declares are all included whenever the parent is rendered.
//
// Stylesheets and scripts are declared as resources (CSSLink, CSSInline,
// JSLink, JSInline). Resources are deduplicated across the component tree and
// ordered: a component's resources keep the order they were declared in, and
// a resource can state that it must come before or after any other resource
// through its Relation function.
package lantern
