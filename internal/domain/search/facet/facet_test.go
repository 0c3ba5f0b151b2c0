package facet

import (
	"encoding/json"
	"errors"
	"net/url"
	"slices"
	"testing"

	"github.com/kailas-cloud/facetdex/internal/domain"
)

func values(t *testing.T, raw string) Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return Values(v)
}

func clausesJSON(t *testing.T, res Resolution) string {
	t.Helper()
	b, err := json.Marshal(res.Clauses)
	if err != nil {
		t.Fatalf("marshal clauses: %v", err)
	}
	return string(b)
}

func TestValues_Get(t *testing.T) {
	v := values(t, "a=1&a=2&b=")
	got, ok := v.Get("a")
	if !ok || got != "1" {
		t.Errorf("Get(a) = %q, %v; want first value", got, ok)
	}
	if _, ok := v.Get("b"); ok {
		t.Error("empty value should be absent")
	}
	if _, ok := v.Get("c"); ok {
		t.Error("missing key should be absent")
	}
}

func TestKind_IsSupported(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindRange, true},
		{KindTerms, true},
		{"histogram", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsSupported(); got != tt.want {
			t.Errorf("Kind(%q).IsSupported() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestResolve_Ranges(t *testing.T) {
	tests := []struct {
		name        string
		params      string
		wantClauses string
		wantDisplay string
	}{
		{
			name:        "lower only",
			params:      "regularPrice.type=range&regularPrice.from=10",
			wantClauses: `[{"range":{"regularPrice":{"gte":10}}}]`,
			wantDisplay: "regularPrice: 10 TO None",
		},
		{
			name:        "both bounds",
			params:      "regularPrice.type=range&regularPrice.displayName=Price&regularPrice.from=10&regularPrice.to=50",
			wantClauses: `[{"range":{"regularPrice":{"gte":10,"lte":50}}}]`,
			wantDisplay: "Price: 10 TO 50",
		},
		{
			name:        "upper only",
			params:      "regularPrice.type=range&regularPrice.to=300",
			wantClauses: `[{"range":{"regularPrice":{"lte":300}}}]`,
			wantDisplay: "regularPrice: None TO 300",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve([]string{"regularPrice"}, values(t, tt.params))

			if got := clausesJSON(t, res); got != tt.wantClauses {
				t.Errorf("clauses = %s, want %s", got, tt.wantClauses)
			}
			if !slices.Equal(res.Display, []string{tt.wantDisplay}) {
				t.Errorf("display = %v, want [%s]", res.Display, tt.wantDisplay)
			}
			if len(res.Unsupported) != 0 {
				t.Errorf("unexpected unsupported facets: %+v", res.Unsupported)
			}
		})
	}
}

func TestResolve_Terms(t *testing.T) {
	params := values(t, "department.type=terms&department.displayName=Department&department.key=Cameras")

	res := Resolve([]string{"department"}, params)

	if got := clausesJSON(t, res); got != `[{"term":{"department.keyword":"Cameras"}}]` {
		t.Errorf("clauses = %s", got)
	}
	if !slices.Equal(res.Display, []string{"Department: Cameras"}) {
		t.Errorf("display = %v", res.Display)
	}
}

func TestResolve_TermsWithoutKey(t *testing.T) {
	res := Resolve([]string{"department"}, values(t, "department.type=terms"))

	if got := clausesJSON(t, res); got != `[{"term":{"department.keyword":""}}]` {
		t.Errorf("clauses = %s", got)
	}
	if !slices.Equal(res.Display, []string{"department: "}) {
		t.Errorf("display = %v", res.Display)
	}
}

func TestResolve_UnsupportedType(t *testing.T) {
	params := values(t, "color.type=histogram&color.displayName=Color&department.type=terms&department.key=TV")

	res := Resolve([]string{"color", "department"}, params)

	if len(res.Clauses) != 1 || len(res.Display) != 1 {
		t.Errorf("clauses = %d, display = %d, want 1 each", len(res.Clauses), len(res.Display))
	}
	if len(res.Unsupported) != 1 {
		t.Fatalf("unsupported = %+v", res.Unsupported)
	}
	u := res.Unsupported[0]
	if u.Name != "color" || u.Type != "histogram" {
		t.Errorf("unsupported = %+v", u)
	}
	if !errors.Is(u, domain.ErrUnsupportedFacet) {
		t.Error("expected ErrUnsupportedFacet")
	}

	names := 0
	for _, p := range res.Applied.Pairs() {
		if p.Key == NameKey {
			names++
		}
	}
	if names != 2 {
		t.Errorf("applied has %d facet groups, want one per input facet", names)
	}
}

func TestResolve_MissingType(t *testing.T) {
	res := Resolve([]string{"brand"}, values(t, ""))

	if res.Clauses == nil || len(res.Clauses) != 0 {
		t.Errorf("clauses = %v, want empty non-nil", res.Clauses)
	}
	if len(res.Unsupported) != 1 || res.Unsupported[0].Type != "" {
		t.Fatalf("unsupported = %+v", res.Unsupported)
	}
	if got := res.Applied.Encode(); got != "filter.name=brand&brand.type=&brand.displayName=brand" {
		t.Errorf("applied = %q", got)
	}
}

func TestResolve_Counts(t *testing.T) {
	params := values(t, "a.type=range&a.from=1&b.type=terms&b.key=x&c.type=bogus&d.type=range")
	names := []string{"a", "b", "c", "d"}

	res := Resolve(names, params)

	if len(res.Clauses) != len(res.Display) {
		t.Errorf("clauses = %d, display = %d", len(res.Clauses), len(res.Display))
	}
	if len(res.Clauses) != 3 {
		t.Errorf("clauses = %d, want 3", len(res.Clauses))
	}
	if len(res.Params) != len(names) {
		t.Errorf("params = %d, want %d", len(res.Params), len(names))
	}
}

func TestResolve_OrderFollowsInput(t *testing.T) {
	params := values(t, "b.type=terms&b.key=x&a.type=terms&a.key=y")

	res := Resolve([]string{"b", "a"}, params)

	if !slices.Equal(res.Display, []string{"b: x", "a: y"}) {
		t.Errorf("display = %v", res.Display)
	}
	if res.Clauses[0].Field() != "b.keyword" || res.Clauses[1].Field() != "a.keyword" {
		t.Errorf("clause fields = %s, %s", res.Clauses[0].Field(), res.Clauses[1].Field())
	}
}

func TestResolve_Empty(t *testing.T) {
	res := Resolve(nil, values(t, ""))

	if res.Clauses == nil || res.Display == nil {
		t.Error("clauses and display must be non-nil")
	}
	if !res.Applied.IsEmpty() || res.Applied.Encode() != "" {
		t.Errorf("applied = %q", res.Applied.Encode())
	}
}

func TestResolve_NonNumericBoundIsString(t *testing.T) {
	res := Resolve([]string{"releaseDate"}, values(t, "releaseDate.type=range&releaseDate.from=now-1y"))

	if got := clausesJSON(t, res); got != `[{"range":{"releaseDate":{"gte":"now-1y"}}}]` {
		t.Errorf("clauses = %s", got)
	}
}
