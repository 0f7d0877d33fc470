package lantern

import "context"

// ResourceRelationship controls the relationship between two resources. It's
// used to control the order in which CSS and JavaScript resources are rendered
// to the page.
type ResourceRelationship string

const (
	// ResourceRelationshipAfter indicates that the resource should be
	// rendered after the resource it's being compared to.
	ResourceRelationshipAfter ResourceRelationship = "after"

	// ResourceRelationshipBefore indicates that the resource should be
	// rendered before the resource it's being compared to.
	ResourceRelationshipBefore ResourceRelationship = "before"

	// ResourceRelationshipNeutral indicates that the resource has no
	// restrictions about where it's rendered in relation to the resource
	// it's being compared to.
	ResourceRelationshipNeutral ResourceRelationship = "neutral"
)

// RelationCalculator reports how the resource it belongs to must be ordered
// relative to other. Resources of a different kind (CSS versus JavaScript,
// header versus footer) are never compared.
type RelationCalculator func(ctx context.Context, other Resource) ResourceRelationship

// Resource is a stylesheet or script that a Component wants on the page. It
// is implemented by CSSLink, CSSInline, JSLink, and JSInline.
type Resource interface {
	// ResourceID identifies the resource. Two resources with the same ID
	// are the same resource and are only rendered once.
	ResourceID() string

	relation() RelationCalculator
	implicitlyOrdered() bool
	isLink() bool
}
