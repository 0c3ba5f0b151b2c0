package facet

import (
	"errors"
	"net/url"
	"reflect"
	"slices"
	"testing"

	"github.com/kailas-cloud/facetdex/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestFragment_Encode(t *testing.T) {
	var f Fragment
	f.Add("filter.name", "regularPrice")
	f.Add("regularPrice.displayName", "Price & Value")
	f.Add("regularPrice.from", "")

	want := "filter.name=regularPrice&regularPrice.displayName=Price+%26+Value&regularPrice.from="
	if got := f.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
	if f.String() != f.Encode() {
		t.Error("String() must match Encode()")
	}
}

func TestFragment_PairsIsCopy(t *testing.T) {
	var f Fragment
	f.Add("k", "v")
	pairs := f.Pairs()
	pairs[0].Value = "changed"
	if got := f.Pairs()[0].Value; got != "v" {
		t.Errorf("fragment mutated through Pairs(): %q", got)
	}
}

func TestFragment_AppliedGroups(t *testing.T) {
	params := values(t, "regularPrice.type=range&regularPrice.from=10&department.type=terms&department.key=Cameras")

	res := Resolve([]string{"regularPrice", "department"}, params)

	want := "filter.name=regularPrice&regularPrice.type=range&regularPrice.displayName=regularPrice" +
		"&regularPrice.from=10&regularPrice.to=" +
		"&filter.name=department&department.type=terms&department.displayName=department&department.key=Cameras"
	if got := res.Applied.Encode(); got != want {
		t.Errorf("applied = %q\nwant      %q", got, want)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	ps := []Param{
		{Name: "regularPrice", Type: KindRange, DisplayName: "Price", From: strPtr("10")},
		{Name: "department", Type: KindTerms, DisplayName: "Department", Key: strPtr("Cameras & Camcorders")},
		{Name: "color", Type: Kind("histogram"), DisplayName: "color"},
		{Name: "brand", DisplayName: "Brand Name"},
		{Name: "regularPrice", Type: KindRange, DisplayName: "Price", From: strPtr("50"), To: strPtr("300")},
		{Name: "dotted.field", Type: KindTerms, DisplayName: "dotted.field", Key: strPtr("a=b")},
		{Name: "", Type: KindTerms, DisplayName: "Blank", Key: strPtr("k")},
	}

	res := ResolveParams(ps)
	decoded, err := Decode(res.Applied.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(ps, decoded) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", decoded, ps)
	}
}

func TestDecode_EmptyNameKeepsSuffixes(t *testing.T) {
	res := Resolve([]string{""}, values(t, ".type=range&.displayName=Unnamed&.to=9"))

	decoded, err := Decode(res.Applied.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	p := decoded[0]
	if p.Type != KindRange || p.DisplayName != "Unnamed" || p.To == nil || *p.To != "9" {
		t.Errorf("decoded = %+v", p)
	}
}

func TestDecode_ResolveTwiceIsStable(t *testing.T) {
	params := values(t, "regularPrice.type=range&regularPrice.from=10&x.type=weird")
	first := Resolve([]string{"regularPrice", "x"}, params)

	decoded, err := Decode(first.Applied.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second := ResolveParams(decoded)

	if first.Applied.Encode() != second.Applied.Encode() {
		t.Errorf("applied changed: %q -> %q", first.Applied.Encode(), second.Applied.Encode())
	}
	if !slices.Equal(first.Display, second.Display) {
		t.Errorf("display changed: %v -> %v", first.Display, second.Display)
	}
}

func TestDecode_QueryStringAnyOrder(t *testing.T) {
	q := url.Values{}
	q.Set("query", "camera")
	q.Set("department.type", "terms")
	q.Set("department.key", "TV")
	q.Set("filter.name", "department")

	ps, err := Decode("?" + q.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("params = %+v", ps)
	}
	if ps[0].Type != KindTerms || ps[0].Key == nil || *ps[0].Key != "TV" || ps[0].DisplayName != "department" {
		t.Errorf("param = %+v", ps[0])
	}
}

func TestDecode_EmptyValuesAreAbsent(t *testing.T) {
	ps, err := Decode("filter.name=p&p.type=range&p.displayName=&p.from=&p.to=5")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("params = %+v", ps)
	}
	if ps[0].From != nil {
		t.Errorf("from = %q, want absent", *ps[0].From)
	}
	if ps[0].To == nil || *ps[0].To != "5" {
		t.Errorf("to = %v", ps[0].To)
	}
	if ps[0].DisplayName != "p" {
		t.Errorf("display name = %q", ps[0].DisplayName)
	}
}

func TestDecode_Empty(t *testing.T) {
	ps, err := Decode("")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ps) != 0 {
		t.Errorf("params = %+v", ps)
	}
}

func TestDecode_BadEscape(t *testing.T) {
	_, err := Decode("filter.name=%zz")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}
