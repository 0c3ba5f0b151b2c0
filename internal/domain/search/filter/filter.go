package filter

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Clause is a single filter predicate: either a term match or a range.
type Clause struct {
	field     string
	term      *Bound
	rangeExpr *Range
}

// NewTerm creates an exact term match on field.
func NewTerm(field string, value Bound) Clause {
	return Clause{field: field, term: &value}
}

// NewRange creates a range predicate on field.
func NewRange(field string, r Range) Clause {
	return Clause{field: field, rangeExpr: &r}
}

// Field returns the field name.
func (c Clause) Field() string { return c.field }

// Term returns the term value, or nil for range clauses.
func (c Clause) Term() *Bound { return c.term }

// Range returns the range expression, or nil for term clauses.
func (c Clause) Range() *Range { return c.rangeExpr }

// IsTerm reports whether this is a term clause.
func (c Clause) IsTerm() bool { return c.term != nil }

// IsRange reports whether this is a range clause.
func (c Clause) IsRange() bool { return c.rangeExpr != nil }

// MarshalJSON renders {"term":{field:value}} or {"range":{field:{...}}}.
func (c Clause) MarshalJSON() ([]byte, error) {
	switch {
	case c.term != nil:
		return json.Marshal(map[string]map[string]Bound{
			"term": {c.field: *c.term},
		})
	case c.rangeExpr != nil:
		return json.Marshal(map[string]map[string]Range{
			"range": {c.field: *c.rangeExpr},
		})
	default:
		return []byte("null"), nil
	}
}

// Range is an inclusive range with optional lower and upper bounds.
type Range struct {
	gte *Bound
	lte *Bound
}

// NewRangeBounds creates a Range. Nil bounds are omitted from the output.
func NewRangeBounds(gte, lte *Bound) Range {
	return Range{gte: gte, lte: lte}
}

// GTE returns the lower inclusive bound.
func (r Range) GTE() *Bound { return r.gte }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *Bound { return r.lte }

// MarshalJSON renders {"gte":..,"lte":..} with absent bounds omitted.
func (r Range) MarshalJSON() ([]byte, error) {
	out := struct {
		GTE *Bound `json:"gte,omitempty"`
		LTE *Bound `json:"lte,omitempty"`
	}{GTE: r.gte, LTE: r.lte}
	return json.Marshal(out)
}

// Bound is a raw user-supplied filter value.
// Values that parse as finite numbers are emitted as JSON numbers, others as strings.
type Bound string

// Ptr returns a pointer to b.
func (b Bound) Ptr() *Bound { return &b }

// String returns the raw value.
func (b Bound) String() string { return string(b) }

// Number returns the numeric value and whether the bound is numeric.
func (b Bound) Number() (float64, bool) {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// jsonNumber matches a JSON number literal.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// MarshalJSON implements json.Marshaler. JSON number literals are emitted
// verbatim so integers beyond float64 precision stay exact.
func (b Bound) MarshalJSON() ([]byte, error) {
	if f, ok := b.Number(); ok {
		if jsonNumber.MatchString(string(b)) {
			return json.Marshal(json.Number(b))
		}
		return json.Marshal(f)
	}
	return json.Marshal(string(b))
}
