// Package sessionid builds and parses the composite identifiers that route
// PTY events to the tab that owns them. A composite id has the form
// "{ownerSessionID}-terminal-{tabID}".
package sessionid

import "strings"

// Separator joins the owner session id and the tab id.
//
// Neither side is escaped. If an owner or tab id itself contains the
// separator, Parse splits on the last occurrence, which keeps routing
// stable as long as tab ids never contain the separator (ours are UUIDs).
const Separator = "-terminal-"

// Build returns the composite identifier for a tab within an owner session.
func Build(ownerSessionID, tabID string) string {
	return ownerSessionID + Separator + tabID
}

// Parse splits a composite identifier into its owner session id and tab id.
// The split happens at the last occurrence of the separator. Returns
// ok=false when the separator is absent or either side would be empty.
func Parse(composite string) (ownerSessionID, tabID string, ok bool) {
	i := strings.LastIndex(composite, Separator)
	if i <= 0 {
		return "", "", false
	}
	owner, tab := composite[:i], composite[i+len(Separator):]
	if tab == "" {
		return "", "", false
	}
	return owner, tab, true
}

// Owner reports whether the composite identifier belongs to the given owner
// session. A malformed composite never matches.
func Owner(composite, ownerSessionID string) bool {
	owner, _, ok := Parse(composite)
	return ok && owner == ownerSessionID
}
