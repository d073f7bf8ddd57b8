package text

import "testing"

func TestURLTail(t *testing.T) {
	tests := map[string]string{
		"https://antarcticfootballleague.com/highlights": "highlights",
		"https://example.com/":                           "",
		"no-slash":                                       "no-slash",
		"":                                               "",
	}
	for in, want := range tests {
		if got := URLTail(in); got != want {
			t.Fatalf("URLTail(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello world", "Hello world"},
		{"Hello world", "Hello world"},
		{"5 things", "5 things"},
		{"élan", "Élan"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := UpperFirst(tt.in); got != tt.want {
			t.Fatalf("UpperFirst(%q): got=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestFirstIsUpper(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Buy tickets", true},
		{"buy tickets", false},
		{"3 ways", true},
		{"", true},
	}
	for _, tt := range tests {
		if got := FirstIsUpper(tt.in); got != tt.want {
			t.Fatalf("FirstIsUpper(%q): got=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestShortDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-02-14", "2/14"},
		{"2026-11-05", "11/05"},
		{"2026-01-01", "1/01"},
		{"20260214", ""},
	}
	for _, tt := range tests {
		if got := ShortDate(tt.in); got != tt.want {
			t.Fatalf("ShortDate(%q): got=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestCompactLowerAndContainsFold(t *testing.T) {
	if got := CompactLower("Antarctic Football League"); got != "antarcticfootballleague" {
		t.Fatalf("unexpected compact form: %s", got)
	}
	if !ContainsFold("Buy TICKETS", "ticket") {
		t.Fatalf("expected case-insensitive match")
	}
	if Length("Café") != 4 {
		t.Fatalf("expected rune length 4")
	}
}
