package checksum

import "testing"

func TestSumStable(t *testing.T) {
	a := Sum([]byte("hello"))
	if a != Sum([]byte("hello")) {
		t.Fatal("sum should be deterministic")
	}
	if a == Sum([]byte("hello!")) {
		t.Fatal("different input should give a different sum")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
}

func TestQuote(t *testing.T) {
	sum := Sum([]byte("body"))
	if got := Quote(sum); got != `"`+sum+`"` {
		t.Errorf("Quote = %q", got)
	}
}

func TestMatches(t *testing.T) {
	etag := Quote(Sum([]byte("body")))
	cases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{etag, true},
		{"W/" + etag, true},
		{`"other", ` + etag, true},
		{`"other"`, false},
		{"*", true},
	}
	for _, c := range cases {
		if got := Matches(c.header, etag); got != c.want {
			t.Errorf("Matches(%q) = %v, want %v", c.header, got, c.want)
		}
	}
}
