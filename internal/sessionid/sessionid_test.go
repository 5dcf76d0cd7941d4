package sessionid_test

import (
	"testing"

	"github.com/fraywing/termdock/internal/sessionid"
)

func TestBuild(t *testing.T) {
	got := sessionid.Build("sess-1", "tab-9")
	want := "sess-1-terminal-tab-9"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		composite string
		wantOwner string
		wantTab   string
		wantOK    bool
	}{
		{
			name:      "simple",
			composite: "abc-terminal-def",
			wantOwner: "abc",
			wantTab:   "def",
			wantOK:    true,
		},
		{
			name:      "uuid ids",
			composite: "f81d4fae-7dec-terminal-11d0-a765",
			wantOwner: "f81d4fae-7dec",
			wantTab:   "11d0-a765",
			wantOK:    true,
		},
		{
			name:      "owner contains separator, split on last occurrence",
			composite: "a-terminal-b-terminal-c",
			wantOwner: "a-terminal-b",
			wantTab:   "c",
			wantOK:    true,
		},
		{
			name:      "no separator",
			composite: "plain-session-id",
			wantOK:    false,
		},
		{
			name:      "empty string",
			composite: "",
			wantOK:    false,
		},
		{
			name:      "empty owner",
			composite: "-terminal-tab",
			wantOK:    false,
		},
		{
			name:      "empty tab",
			composite: "owner-terminal-",
			wantOK:    false,
		},
		{
			name:      "separator only",
			composite: "-terminal-",
			wantOK:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			owner, tab, ok := sessionid.Parse(tc.composite)
			if ok != tc.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.composite, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if owner != tc.wantOwner || tab != tc.wantTab {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tc.composite, owner, tab, tc.wantOwner, tc.wantTab)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	owner, tab, ok := sessionid.Parse(sessionid.Build("s1", "t1"))
	if !ok || owner != "s1" || tab != "t1" {
		t.Errorf("round trip = (%q, %q, %v), want (s1, t1, true)", owner, tab, ok)
	}
}

func TestOwner(t *testing.T) {
	tests := []struct {
		name      string
		composite string
		owner     string
		want      bool
	}{
		{"match", "s1-terminal-t1", "s1", true},
		{"foreign owner", "s2-terminal-t1", "s1", false},
		{"shared tab suffix", "other-terminal-t1", "s1", false},
		{"malformed", "garbage", "s1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sessionid.Owner(tc.composite, tc.owner); got != tc.want {
				t.Errorf("Owner(%q, %q) = %v, want %v", tc.composite, tc.owner, got, tc.want)
			}
		})
	}
}
