package domain

// LikeAction reports the effect of a toggle.
type LikeAction string

const (
	LikeAdded   LikeAction = "liked"
	LikeRemoved LikeAction = "unliked"
)

// LikeSummary is the aggregate like state for a catalog entry.
type LikeSummary struct {
	Count       int
	LikedByUser bool
}

// LikeToggle is the outcome of flipping a user's like.
type LikeToggle struct {
	Action LikeAction
	Count  int
}
