package deck

import (
	"reflect"
	"testing"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()

	known := func(id string) bool { return id == "a" || id == "b" || id == "c" }
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "dash", in: "b-a", want: []string{"b", "a"}},
		{name: "mixed separators", in: "c.a,b;a", want: []string{"c", "a", "b", "a"}},
		{name: "unknown dropped", in: "a-x-b-yy", want: []string{"a", "b"}},
		{name: "empty fields dropped", in: "--a..;b,", want: []string{"a", "b"}},
		{name: "only garbage", in: "%%%-???", want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseSelection(tt.in, known)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseSelection(%q): got %#v want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSelection_NilKnownAcceptsAll(t *testing.T) {
	t.Parallel()

	got := ParseSelection("x-y", nil)
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("got %v", got)
	}
}

func TestJoinSelection_RoundTrip(t *testing.T) {
	t.Parallel()

	ids := []string{"vespers", "compline", "lauds"}
	s := JoinSelection(ids)
	if s != "vespers-compline-lauds" {
		t.Fatalf("join: %q", s)
	}
	if got := ParseSelection(s, nil); !reflect.DeepEqual(got, ids) {
		t.Fatalf("round trip: %v", got)
	}
}
