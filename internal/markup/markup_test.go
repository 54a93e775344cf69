package markup

import (
	"testing"
)

func TestStripMarkers_BoldPairConsumedAtomically(t *testing.T) {
	got := StripMarkers("a **bold** b")
	if got != "a bold b" {
		t.Errorf("got %q, want %q", got, "a bold b")
	}
}

func TestStripMarkers_SingleStar(t *testing.T) {
	got := StripMarkers("an *italic* word")
	if got != "an italic word" {
		t.Errorf("got %q, want %q", got, "an italic word")
	}
}

func TestStripMarkers_AllMarkerKinds(t *testing.T) {
	got := StripMarkers("**b** __u__ ==h== *i*")
	if got != "b u h i" {
		t.Errorf("got %q, want %q", got, "b u h i")
	}
}

func TestStripMarkers_LoneUnderscoreAndEqualsStayLiteral(t *testing.T) {
	got := StripMarkers("a_b = c")
	if got != "a_b = c" {
		t.Errorf("got %q, want %q", got, "a_b = c")
	}
}

func TestStripMarkers_ImageToken(t *testing.T) {
	got := StripMarkers("before [IMG:pic-1] after")
	if got != "before  after" {
		t.Errorf("got %q, want %q", got, "before  after")
	}
}

func TestStripMarkers_MalformedTokenStays(t *testing.T) {
	// Missing id or illegal characters: not a token, left as-is.
	got := StripMarkers("[IMG:] [IMG:bad id]")
	if got != "[IMG:] [IMG:bad id]" {
		t.Errorf("got %q", got)
	}
}

func TestImageIDs_OrderAndDedup(t *testing.T) {
	ids := ImageIDs("x [IMG:b] y [IMG:a] z [IMG:b]")
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("ids = %v, want [b a]", ids)
	}
}

func TestImageTokenSpans_RuneOffsetsWithCJK(t *testing.T) {
	// Multi-byte runes before the token: spans must be rune indices.
	buf := []rune("你好[IMG:x]末")
	spans := ImageTokenSpans(buf)
	if len(spans) != 1 {
		t.Fatalf("len(spans) = %d, want 1", len(spans))
	}
	if spans[0][0] != 2 || spans[0][1] != 9 {
		t.Errorf("span = %v, want [2 9]", spans[0])
	}
	if string(buf[spans[0][0]:spans[0][1]]) != "[IMG:x]" {
		t.Errorf("span does not cover token: %q", string(buf[spans[0][0]:spans[0][1]]))
	}
}

func TestImageTokenSpans_Multiple(t *testing.T) {
	buf := []rune("[IMG:a]mid[IMG:b]")
	spans := ImageTokenSpans(buf)
	if len(spans) != 2 {
		t.Fatalf("len(spans) = %d, want 2", len(spans))
	}
	if spans[0][0] != 0 || spans[0][1] != 7 || spans[1][0] != 10 || spans[1][1] != 17 {
		t.Errorf("spans = %v", spans)
	}
}
