package toggle

import "fmt"

// Variant fixes how a control labels itself and whether it tracks a count.
// The set is closed: favorites are private bookmarks and never show a count.
type Variant struct {
	name          string
	showsCount    bool
	blockable     bool
	inactiveLabel string
	activeLabel   string
	blockedLabel  string
	countNoun     string
}

var (
	Like = Variant{
		name:          "like",
		showsCount:    true,
		blockable:     true,
		inactiveLabel: "Like",
		activeLabel:   "Unlike",
		blockedLabel:  "You can't like your own photo",
		countNoun:     "like",
	}

	// Favorite can be used on one's own photos, so it ignores WithBlocked.
	Favorite = Variant{
		name:          "favorite",
		inactiveLabel: "Favorite",
		activeLabel:   "Unfavorite",
	}
)

func (v Variant) Name() string {
	return v.name
}

func (v Variant) ShowsCount() bool {
	return v.showsCount
}

// countText renders "1 like", "{n} likes", or nothing at zero.
func (v Variant) countText(s State) string {
	if !v.showsCount || !s.HasCount || s.Count <= 0 {
		return ""
	}
	if s.Count == 1 {
		return fmt.Sprintf("%d %s", s.Count, v.countNoun)
	}
	return fmt.Sprintf("%d %ss", s.Count, v.countNoun)
}
