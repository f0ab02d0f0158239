package model

import (
	"fmt"

	"github.com/samber/mo"
)

// ShapeKind is what probing discovered behind a URL
type ShapeKind string

const (
	ShapeSingle     ShapeKind = "single"
	ShapeCollection ShapeKind = "collection"
)

// Member is one item of a collection, or the lone item of a single URL
type Member struct {
	Index int // 1-based position in engine enumeration order
	ID    string
	Title string
	URL   string
}

// Identifier returns the value used to name the member in summaries
func (m Member) Identifier() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Title != "" {
		return m.Title
	}
	return m.URL
}

// CollectionInfo describes a probed playlist
type CollectionInfo struct {
	Title         string
	TitleFallback bool // true when Title is the fallback constant
	MemberCount   mo.Option[int]
	Members       []Member
}

// Len returns the number of enumerated members
func (c *CollectionInfo) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Members)
}

// AddMember appends a member, assigning the next ordinal
func (c *CollectionInfo) AddMember(m Member) {
	m.Index = len(c.Members) + 1
	c.Members = append(c.Members, m)
	c.MemberCount = mo.Some(len(c.Members))
}

// ItemShape is the result of probing a URL
type ItemShape struct {
	Kind       ShapeKind
	Item       Member          // set for ShapeSingle
	Collection *CollectionInfo // set for ShapeCollection
}

// SingleShape builds the shape of a lone item
func SingleShape(item Member) ItemShape {
	item.Index = 1
	return ItemShape{Kind: ShapeSingle, Item: item}
}

// CollectionShape builds the shape of a playlist
func CollectionShape(info *CollectionInfo) ItemShape {
	return ItemShape{Kind: ShapeCollection, Collection: info}
}

// Matches reports whether the declared kind agrees with the probed shape
func (s ItemShape) Matches(kind Kind) bool {
	switch kind {
	case KindSingleItem:
		return s.Kind == ShapeSingle
	case KindCollection:
		return s.Kind == ShapeCollection
	default:
		return false
	}
}

// String returns a short human readable description
func (s ItemShape) String() string {
	if s.Kind == ShapeCollection && s.Collection != nil {
		return fmt.Sprintf("collection %q (%d members)", s.Collection.Title, s.Collection.Len())
	}
	return fmt.Sprintf("single item %q", s.Item.Identifier())
}
