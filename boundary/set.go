// Package boundary holds the polygon boundary model: validity predicates,
// containment and an immutable set of polygons with their attributes.
package boundary

import (
	"log/slog"
	"strings"

	"github.com/paulmach/orb"
)

// Attributes is the string metadata attached to a polygon, commonly the
// KML placemark name, styleUrl and data_<field> extended keys.
type Attributes map[string]string

// Get returns the value for key, or "" when absent.
func (a Attributes) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Entry pairs a polygon with its attributes, the unit of exchange with the
// loader.
type Entry struct {
	Polygon    orb.Polygon
	Attributes Attributes
}

// Set is an immutable collection of valid polygons. Construction drops
// invalid geometry; filtering produces a new Set. An empty Set is a legal
// state and every aggregate query handles it.
type Set struct {
	polygons []orb.Polygon
	attrs    []Attributes
	dropped  []int

	log *slog.Logger
}

type options struct {
	logger *slog.Logger
}

type Option interface {
	apply(*options)
}

type loggerOption struct{ l *slog.Logger }

func (o loggerOption) apply(opts *options) {
	opts.logger = o.l
}

// Default: slog.Default
func WithLogger(l *slog.Logger) Option {
	return loggerOption{l: l}
}

func loadOptions(opts ...Option) options {
	options := options{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}

// NewSet builds a Set from loaded entries, keeping only valid polygons.
// Dropped polygons are logged with their input index and counted; an empty
// result is not an error.
func NewSet(entries []Entry, opts ...Option) *Set {
	options := loadOptions(opts...)

	s := &Set{
		log: options.logger.With("component", "boundary"),
	}

	for i, e := range entries {
		if !Valid(e.Polygon) {
			s.log.Warn("dropping invalid polygon", "index", i)
			s.dropped = append(s.dropped, i)
			continue
		}
		attrs := e.Attributes
		if attrs == nil {
			attrs = Attributes{}
		}
		s.polygons = append(s.polygons, e.Polygon)
		s.attrs = append(s.attrs, attrs)
	}

	if len(s.dropped) > 0 {
		s.log.Warn("invalid polygons dropped", "count", len(s.dropped))
	}

	return s
}

// Len returns the number of polygons in the set.
func (s *Set) Len() int {
	return len(s.polygons)
}

// Polygon returns the i-th polygon in stored order.
func (s *Set) Polygon(i int) orb.Polygon {
	return s.polygons[i]
}

// Attributes returns the attributes of the i-th polygon.
func (s *Set) Attributes(i int) Attributes {
	return s.attrs[i]
}

// DroppedIndexes returns the input indexes of polygons discarded at
// construction.
func (s *Set) DroppedIndexes() []int {
	return s.dropped
}

// Combined returns the merged boundary region: the polygon itself when the
// set holds exactly one, a multi-polygon region otherwise. ok is false for
// an empty set.
func (s *Set) Combined() (region orb.Geometry, ok bool) {
	return CombinedRegion(s.polygons)
}

// Contains reports whether point is inside any member polygon. A point in
// the gap between two members is outside, even when it falls within the
// aggregate bound.
func (s *Set) Contains(point orb.Point) bool {
	for _, polygon := range s.polygons {
		if Contains(polygon, point) {
			return true
		}
	}
	return false
}

// Bound returns the bounding box over all member polygons. ok is false for
// an empty set.
func (s *Set) Bound() (bound orb.Bound, ok bool) {
	region, ok := s.Combined()
	if !ok {
		return orb.Bound{}, false
	}
	return region.Bound(), true
}

// Area returns the sum of the member polygon areas in native square units.
// Overlapping members are counted twice; overlapping input is not expected
// in normal use but must not fail.
func (s *Set) Area() float64 {
	total := 0.0
	for _, polygon := range s.polygons {
		total += Area(polygon)
	}
	return total
}

// FilterByAttribute returns a new Set with the polygons whose attribute
// under field contains value, compared case-insensitively. Order is
// preserved. No match yields an empty Set; whether that is fatal is the
// caller's call.
func (s *Set) FilterByAttribute(field, value string) *Set {
	filtered := &Set{log: s.log}

	needle := strings.ToLower(value)
	for i, attrs := range s.attrs {
		if strings.Contains(strings.ToLower(attrs.Get(field)), needle) {
			filtered.polygons = append(filtered.polygons, s.polygons[i])
			filtered.attrs = append(filtered.attrs, attrs)
		}
	}

	s.log.Info("filtered polygons by attribute",
		"field", field, "value", value, "matched", filtered.Len())

	return filtered
}
