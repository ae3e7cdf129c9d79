package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyContent = errors.New("comment content is required")
	ErrMissingUser  = errors.New("comment author is required")
)

// Comment is a user note attached to a catalog entry, with an optional rating.
type Comment struct {
	ID        string
	UserID    string
	GameID    string
	Content   string
	Rating    *int
	CreatedAt time.Time
}

// NewComment validates and constructs a comment aggregate.
func NewComment(userID, gameID, content string, rating *int) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	return &Comment{
		UserID:  userID,
		GameID:  gameID,
		Content: content,
		Rating:  rating,
	}, nil
}
