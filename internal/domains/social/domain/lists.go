package domain

// ListKind names one of the per-user game lists.
type ListKind string

const (
	ListPlayed   ListKind = "played"
	ListWishlist ListKind = "wishlist"
)

// GameLists holds a user's played and wishlist app ids.
type GameLists struct {
	Played   []int64
	Wishlist []int64
}

// Contains reports whether the app id is present in the named list.
func (l GameLists) Contains(kind ListKind, steamAppID int64) bool {
	entries := l.Played
	if kind == ListWishlist {
		entries = l.Wishlist
	}
	for _, id := range entries {
		if id == steamAppID {
			return true
		}
	}
	return false
}
