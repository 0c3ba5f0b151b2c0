package facet

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/facetdex/internal/domain"
)

// Pair is one key/value entry of a Fragment.
type Pair struct {
	Key   string
	Value string
}

// Fragment is an ordered URL query fragment. Encode is the only serializer.
type Fragment struct {
	pairs []Pair
}

// Add appends a key/value pair.
func (f *Fragment) Add(key, value string) {
	f.pairs = append(f.pairs, Pair{Key: key, Value: value})
}

// Pairs returns a copy of the entries in insertion order.
func (f Fragment) Pairs() []Pair {
	out := make([]Pair, len(f.pairs))
	copy(out, f.pairs)
	return out
}

// IsEmpty reports whether the fragment has no entries.
func (f Fragment) IsEmpty() bool { return len(f.pairs) == 0 }

// Encode renders key=value pairs joined by '&', without a leading separator.
func (f Fragment) Encode() string {
	var b strings.Builder
	for i, p := range f.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (f Fragment) String() string { return f.Encode() }

// addParam appends the entry group of p. Absent values are written empty.
func (f *Fragment) addParam(p Param) {
	f.Add(NameKey, p.Name)
	f.Add(key(p.Name, SuffixType), string(p.Type))
	f.Add(key(p.Name, SuffixDisplayName), p.DisplayName)
	switch p.Type {
	case KindRange:
		f.Add(key(p.Name, SuffixFrom), deref(p.From))
		f.Add(key(p.Name, SuffixTo), deref(p.To))
	case KindTerms:
		f.Add(key(p.Name, SuffixKey), deref(p.Key))
	}
}

var suffixes = []string{SuffixType, SuffixDisplayName, SuffixFrom, SuffixTo, SuffixKey}

// Decode parses an encoded fragment or query string back into facets.
// Every filter.name entry opens a facet; "<name>.<suffix>" entries attach to
// the latest facet with that name, or to the next one declared later.
// Empty values decode as absent. Unrelated keys are ignored.
func Decode(encoded string) ([]Param, error) {
	encoded = strings.TrimPrefix(encoded, "?")
	var (
		params  []Param
		latest  = map[string]int{}
		pending = map[string][]Pair{}
	)
	for _, part := range strings.Split(encoded, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		k, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decode key %q: %w: %w", rawKey, domain.ErrInvalidRequest, err)
		}
		v, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w: %w", k, domain.ErrInvalidRequest, err)
		}

		if k == NameKey {
			p := Param{Name: v, DisplayName: v}
			for _, pair := range pending[v] {
				applySuffix(&p, pair.Key, pair.Value)
			}
			delete(pending, v)
			params = append(params, p)
			latest[v] = len(params) - 1
			continue
		}

		name, suffix, ok := splitSuffix(k)
		if !ok {
			continue
		}
		if idx, found := latest[name]; found {
			applySuffix(&params[idx], suffix, v)
			continue
		}
		pending[name] = append(pending[name], Pair{Key: suffix, Value: v})
	}
	return params, nil
}

func splitSuffix(k string) (name, suffix string, ok bool) {
	for _, s := range suffixes {
		if n, found := strings.CutSuffix(k, "."+s); found {
			return n, s, true
		}
	}
	return "", "", false
}

func applySuffix(p *Param, suffix, v string) {
	var val *string
	if v != "" {
		val = &v
	}
	switch suffix {
	case SuffixType:
		p.Type = Kind(v)
	case SuffixDisplayName:
		p.DisplayName = p.Name
		if v != "" {
			p.DisplayName = v
		}
	case SuffixFrom:
		p.From = val
	case SuffixTo:
		p.To = val
	case SuffixKey:
		p.Key = val
	}
}
