package conform

import (
	"testing"
	"time"
)

func TestSatisfiesMultipleOf(t *testing.T) {
	cases := []struct {
		n, d float64
		want bool
	}{
		{-2, 2, true},
		{2, -2, true},
		{-2, -2, true},
		{0, 7, true},
		{0, -7, true},
		{9, 3, true},
		{7, 2, false},
		{-7, 2, false},
		{4, 0, false},
		{1.5, 0.5, true},
	}
	for _, tc := range cases {
		if got := satisfiesMultipleOf(tc.n, tc.d); got != tc.want {
			t.Fatalf("multipleOf(%v, %v) = %v, want %v", tc.n, tc.d, got, tc.want)
		}
	}
}

func TestRanges(t *testing.T) {
	if !satisfiesMinimum(2, 2) || satisfiesMinimum(1, 2) {
		t.Fatalf("minimum is inclusive")
	}
	if satisfiesExclusiveMinimum(2, 2) || !satisfiesExclusiveMinimum(3, 2) {
		t.Fatalf("exclusiveMinimum is strict")
	}
	if !satisfiesMaximum(2, 2) || satisfiesMaximum(3, 2) {
		t.Fatalf("maximum is inclusive")
	}
	if satisfiesExclusiveMaximum(2, 2) || !satisfiesExclusiveMaximum(1, 2) {
		t.Fatalf("exclusiveMaximum is strict")
	}
}

func TestStringLength_CountsRunes(t *testing.T) {
	if stringLength("日本語") != 3 {
		t.Fatalf("expected rune count")
	}
	if !satisfiesMinLength("ab", 2) || satisfiesMinLength("a", 2) {
		t.Fatalf("minLength")
	}
	if !satisfiesMaxLength("ab", 2) || satisfiesMaxLength("abc", 2) {
		t.Fatalf("maxLength")
	}
}

func TestMatchPattern(t *testing.T) {
	const timeout = time.Second
	cases := []struct {
		name         string
		s, src, flag string
		want         bool
	}{
		{"plain", "abc", "b", "", true},
		{"anchored miss", "abc", "^b", "", false},
		{"ignore case", "abc", "^A", "i", true},
		{"case sensitive", "abc", "^A", "", false},
		{"multiline", "x\nfoo", "^foo", "m", true},
		{"single line default", "x\nfoo", "^foo", "", false},
		{"dot excludes newline", "a\nb", "a.b", "", false},
		{"sticky at start", "abc", "a", "y", true},
		{"sticky elsewhere", "abc", "b", "y", false},
		{"global ignored", "abc", "c", "g", true},
		{"unicode code point escape", "a", `^\u{61}$`, "u", true},
		{"unicode astral dot", "\U0001F600", "^.$", "u", true},
		{"invalid source", "abc", "[", "", false},
		{"unknown flag", "abc", "b", "q", false},
		{"duplicate flag", "abc", "b", "ii", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchPattern(tc.s, tc.src, tc.flag, timeout); got != tc.want {
				t.Fatalf("matchPattern(%q, %q, %q) = %v, want %v", tc.s, tc.src, tc.flag, got, tc.want)
			}
		})
	}
}

func TestPathRef_Pointer(t *testing.T) {
	if rootPath.pointer() != "/" {
		t.Fatalf("root pointer")
	}
	p := rootPath.field("a/b").index(2).field("c~d")
	if got := p.pointer(); got != "/a~1b/2/c~0d" {
		t.Fatalf("unexpected pointer %q", got)
	}
}
