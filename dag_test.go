package lantern

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func resourceIDs(resources []Resource) []string {
	ids := make([]string, 0, len(resources))
	for _, res := range resources {
		ids = append(ids, res.ResourceID())
	}
	return ids
}

func TestGraphKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	g := newGraph()
	g.addChain([]Resource{
		CSSLink{Href: "/z.css"},
		CSSLink{Href: "/a.css"},
		CSSLink{Href: "/m.css"},
	})
	got, err := g.walk()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"CSSLink(/z.css)", "CSSLink(/a.css)", "CSSLink(/m.css)"}
	if !slices.Equal(resourceIDs(got), want) {
		t.Errorf("expected %v, got %v", want, resourceIDs(got))
	}
}

func TestGraphDisableImplicitOrdering(t *testing.T) {
	t.Parallel()

	g := newGraph()
	g.addChain([]Resource{
		CSSInline{Path: "z.css", DisableImplicitOrdering: true},
		CSSInline{Path: "a.css", DisableImplicitOrdering: true},
		CSSLink{Href: "/late.css", DisableImplicitOrdering: true},
	})
	got, err := g.walk()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"CSSLink(/late.css)", "CSSInline(a.css)", "CSSInline(z.css)"}
	if !slices.Equal(resourceIDs(got), want) {
		t.Errorf("expected %v, got %v", want, resourceIDs(got))
	}
}

func TestGraphDeduplicates(t *testing.T) {
	t.Parallel()

	g := newGraph()
	g.addChain([]Resource{JSLink{Src: "/a.js"}, JSLink{Src: "/b.js"}})
	g.addChain([]Resource{JSLink{Src: "/b.js"}, JSLink{Src: "/a.js"}})
	got, err := g.walk()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"JSLink(/a.js)", "JSLink(/b.js)"}
	if !slices.Equal(resourceIDs(got), want) {
		t.Errorf("expected %v, got %v", want, resourceIDs(got))
	}
}

func TestGraphCycle(t *testing.T) {
	t.Parallel()

	before := func(href string) RelationCalculator {
		return func(_ context.Context, other Resource) ResourceRelationship {
			if link, ok := other.(CSSLink); ok && link.Href == href {
				return ResourceRelationshipBefore
			}
			return ResourceRelationshipNeutral
		}
	}
	g := newGraph()
	g.addChain([]Resource{
		CSSLink{Href: "/a.css", Relation: before("/b.css")},
		CSSLink{Href: "/b.css", Relation: before("/a.css")},
	})
	g.applyRelations(context.Background())
	_, err := g.walk()
	if !errors.Is(err, ErrResourceCycle) {
		t.Errorf("expected %v, got %v", ErrResourceCycle, err)
	}
}
