package access

import (
	"strconv"
	"strings"
)

// AllowList is an immutable set of user identifiers permitted to create
// meetings. The zero value and a nil *AllowList both allow everyone.
type AllowList struct {
	ids map[string]struct{}
}

// NewAllowList builds an AllowList from opaque user identifiers.
// Blank entries are ignored; if nothing remains the list is unrestricted.
func NewAllowList(ids []string) *AllowList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return &AllowList{ids: set}
}

// Restricted reports whether the list limits access at all.
func (a *AllowList) Restricted() bool {
	return a != nil && len(a.ids) > 0
}

// Len returns the number of permitted identifiers.
func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.ids)
}

// IsAllowed reports whether userID may create meetings.
func (a *AllowList) IsAllowed(userID string) bool {
	if !a.Restricted() {
		return true
	}
	_, ok := a.ids[userID]
	return ok
}

// IsAllowedID is IsAllowed for a numeric Telegram user ID.
func (a *AllowList) IsAllowedID(userID int64) bool {
	return a.IsAllowed(strconv.FormatInt(userID, 10))
}
