package goform_test

import (
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	goform "github.com/reoring/goform"
)

func path(t *testing.T, name string) goform.NamePath {
	t.Helper()
	p, err := goform.ParseName(name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func seqOf(hs []goform.Hash, tail error) iter.Seq2[goform.Hash, error] {
	return func(yield func(goform.Hash, error) bool) {
		for _, h := range hs {
			if !yield(h, nil) {
				return
			}
		}
		if tail != nil {
			yield(goform.Hash{}, tail)
		}
	}
}

func TestConsolidate(t *testing.T) {
	hs := []goform.Hash{
		{Path: path(t, "title"), Content: goform.TextContent("hello")},
		{Path: path(t, "tags[]"), Content: goform.TextContent("a")},
		{Path: path(t, "dims[w]"), Content: goform.IntContent(3)},
		{Path: path(t, "tags[]"), Content: goform.TextContent("b")},
		{Path: path(t, "dims[h]"), Content: goform.FloatContent(1.5)},
		{Path: path(t, "raw"), Content: goform.BytesContent("\x00\x01")},
		{Path: path(t, "cover"), Content: goform.FileContent{Filename: "c.png", StoredAs: "up/0.png", Size: 4}},
	}
	got, err := goform.Consolidate(seqOf(hs, nil))
	if err != nil {
		t.Fatal(err)
	}
	want := goform.Map{
		"title": goform.Text("hello"),
		"tags":  goform.Array{goform.Text("a"), goform.Text("b")},
		"dims":  goform.Map{"w": goform.Int(3), "h": goform.Float(1.5)},
		"raw":   goform.Bytes("\x00\x01"),
		"cover": goform.File{Filename: "c.png", StoredAs: "up/0.png", Size: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidate_MismatchedShapeDropped(t *testing.T) {
	hs := []goform.Hash{
		{Path: path(t, "a"), Content: goform.TextContent("first")},
		{Path: path(t, "a[b]"), Content: goform.TextContent("dropped")},
		{Path: path(t, "a[]"), Content: goform.TextContent("dropped too")},
		{Path: path(t, "l[]"), Content: goform.IntContent(1)},
		{Path: path(t, "l[k]"), Content: goform.IntContent(2)},
	}
	got, err := goform.Consolidate(seqOf(hs, nil))
	if err != nil {
		t.Fatal(err)
	}
	want := goform.Map{"a": goform.Text("first"), "l": goform.Array{goform.Int(1)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidate_NestedArrays(t *testing.T) {
	hs := []goform.Hash{
		{Path: path(t, "g[][]"), Content: goform.IntContent(1)},
		{Path: path(t, "g[][]"), Content: goform.IntContent(2)},
		{Path: path(t, "o[][k]"), Content: goform.TextContent("x")},
	}
	got, err := goform.Consolidate(seqOf(hs, nil))
	if err != nil {
		t.Fatal(err)
	}
	// Arrays append element-wise; the inner arrays are never merged.
	want := goform.Map{
		"g": goform.Array{goform.Array{goform.Int(1)}, goform.Array{goform.Int(2)}},
		"o": goform.Array{goform.Map{"k": goform.Text("x")}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidate_Error(t *testing.T) {
	boom := errors.New("boom")
	hs := []goform.Hash{{Path: path(t, "a"), Content: goform.TextContent("x")}}
	m, err := goform.Consolidate(seqOf(hs, boom))
	if !errors.Is(err, boom) || m != nil {
		t.Fatalf("expected boom and no map, got %v %v", m, err)
	}
}

func TestMerge(t *testing.T) {
	got := goform.Merge(goform.Array{goform.Int(1)}, goform.Array{goform.Int(2)})
	if diff := cmp.Diff(goform.Array{goform.Int(1), goform.Int(2)}, got); diff != "" {
		t.Fatal(diff)
	}
	if got := goform.Merge(goform.Text("a"), goform.Text("b")); got != goform.Text("a") {
		t.Fatalf("leaf merge must keep lhs, got %v", got)
	}
	if diff := cmp.Diff(goform.Map{}, goform.Merge(goform.Map{}, goform.Array{})); diff != "" {
		t.Fatal(diff)
	}
}

func TestMarshalAndBind(t *testing.T) {
	m := goform.Map{
		"title": goform.Text("t"),
		"n":     goform.Int(2),
		"tags":  goform.Array{goform.Text("a")},
		"cover": goform.File{Filename: "c.png", StoredAs: "up/0.png", Size: 4},
	}
	data, err := goform.MarshalValue(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty json")
	}

	type upload struct {
		Title string      `json:"title"`
		N     int         `json:"n"`
		Tags  []string    `json:"tags"`
		Cover goform.File `json:"cover"`
	}
	u, err := goform.Bind[upload](m)
	if err != nil {
		t.Fatal(err)
	}
	want := upload{Title: "t", N: 2, Tags: []string{"a"}, Cover: goform.File{Filename: "c.png", StoredAs: "up/0.png", Size: 4}}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Fatal(diff)
	}
}

func TestMarshalValue_NonFiniteFloat(t *testing.T) {
	m := goform.Map{
		"nan":  goform.Float(math.NaN()),
		"up":   goform.Float(math.Inf(1)),
		"down": goform.Float(math.Inf(-1)),
		"x":    goform.Float(1.5),
	}
	data, err := goform.MarshalValue(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"down":"-Inf","nan":"NaN","up":"+Inf","x":1.5}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	type ratios struct {
		NaN  goform.Float `json:"nan"`
		Up   goform.Float `json:"up"`
		Down goform.Float `json:"down"`
		X    goform.Float `json:"x"`
	}
	r, err := goform.Bind[ratios](m)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(float64(r.NaN)) || !math.IsInf(float64(r.Up), 1) || !math.IsInf(float64(r.Down), -1) || r.X != 1.5 {
		t.Fatalf("unexpected %+v", r)
	}
}
