// Package facet resolves user facet selections into filter clauses,
// display strings and the applied-filter URL fragment.
package facet

import (
	"fmt"
	"net/url"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
)

// Kind is the facet type selected by the user.
type Kind string

// Supported facet kinds. Any other value is kept as is and reported unsupported.
const (
	KindRange Kind = "range"
	KindTerms Kind = "terms"
)

// NameKey is the parameter listing active facet names.
const NameKey = "filter.name"

// Parameter suffixes read per facet name.
const (
	SuffixType        = "type"
	SuffixDisplayName = "displayName"
	SuffixFrom        = "from"
	SuffixTo          = "to"
	SuffixKey         = "key"
)

// AbsentValue renders a missing bound in display strings.
const AbsentValue = "None"

// IsSupported reports whether the kind produces a filter clause.
func (k Kind) IsSupported() bool {
	return k == KindRange || k == KindTerms
}

// Params looks up a request parameter. A missing or empty value reports false.
type Params interface {
	Get(key string) (string, bool)
}

// Values adapts url.Values to Params. The first value wins.
type Values url.Values

// Get implements Params.
func (v Values) Get(key string) (string, bool) {
	vs := v[key]
	if len(vs) == 0 || vs[0] == "" {
		return "", false
	}
	return vs[0], true
}

// Param is one active facet and its raw parameter values.
type Param struct {
	Name        string
	Type        Kind
	DisplayName string
	From        *string
	To          *string
	Key         *string
}

// ReadParam collects the parameters of facet name. Bounds are read only for
// range facets and the key only for terms facets.
func ReadParam(name string, params Params) Param {
	p := Param{Name: name, DisplayName: name}
	if typ, ok := params.Get(key(name, SuffixType)); ok {
		p.Type = Kind(typ)
	}
	if dn, ok := params.Get(key(name, SuffixDisplayName)); ok {
		p.DisplayName = dn
	}
	switch p.Type {
	case KindRange:
		p.From = lookup(params, key(name, SuffixFrom))
		p.To = lookup(params, key(name, SuffixTo))
	case KindTerms:
		p.Key = lookup(params, key(name, SuffixKey))
	}
	return p
}

// Clause returns the filter predicate for a supported facet.
func (p Param) Clause() (filter.Clause, bool) {
	switch p.Type {
	case KindRange:
		return filter.NewRange(p.Name, filter.NewRangeBounds(bound(p.From), bound(p.To))), true
	case KindTerms:
		return filter.NewTerm(p.Name+".keyword", filter.Bound(deref(p.Key))), true
	default:
		return filter.Clause{}, false
	}
}

// Display returns the human-readable description for a supported facet.
func (p Param) Display() (string, bool) {
	switch p.Type {
	case KindRange:
		return fmt.Sprintf("%s: %s TO %s", p.DisplayName, displayValue(p.From), displayValue(p.To)), true
	case KindTerms:
		return fmt.Sprintf("%s: %s", p.DisplayName, deref(p.Key)), true
	default:
		return "", false
	}
}

// UnsupportedFacet reports a facet whose type produced no clause.
type UnsupportedFacet struct {
	Name string
	Type Kind
}

func (e *UnsupportedFacet) Error() string {
	return fmt.Sprintf("%s: facet %q has type %q", domain.ErrUnsupportedFacet.Error(), e.Name, e.Type)
}

func (e *UnsupportedFacet) Unwrap() error { return domain.ErrUnsupportedFacet }

// Resolution is the outcome of resolving a facet list.
type Resolution struct {
	Params      []Param
	Clauses     []filter.Clause
	Display     []string
	Applied     Fragment
	Unsupported []*UnsupportedFacet
}

// Resolve reads every named facet from params and resolves it.
func Resolve(names []string, params Params) Resolution {
	ps := make([]Param, 0, len(names))
	for _, name := range names {
		ps = append(ps, ReadParam(name, params))
	}
	return ResolveParams(ps)
}

// ResolveParams resolves already collected facets in order.
// Clauses and Display are never nil.
func ResolveParams(ps []Param) Resolution {
	res := Resolution{
		Params:  ps,
		Clauses: make([]filter.Clause, 0, len(ps)),
		Display: make([]string, 0, len(ps)),
	}
	for _, p := range ps {
		res.Applied.addParam(p)

		clause, ok := p.Clause()
		if !ok {
			res.Unsupported = append(res.Unsupported, &UnsupportedFacet{Name: p.Name, Type: p.Type})
			continue
		}
		res.Clauses = append(res.Clauses, clause)
		display, _ := p.Display()
		res.Display = append(res.Display, display)
	}
	return res
}

func key(name, suffix string) string {
	return name + "." + suffix
}

func lookup(params Params, k string) *string {
	v, ok := params.Get(k)
	if !ok {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func bound(s *string) *filter.Bound {
	if s == nil {
		return nil
	}
	return filter.Bound(*s).Ptr()
}

func displayValue(s *string) string {
	if s == nil {
		return AbsentValue
	}
	return *s
}
