package domain

import (
	"errors"
	"strings"
	"time"
)

// RecommendationStatus enumerates recommendation progression.
type RecommendationStatus string

const (
	StatusPending   RecommendationStatus = "PENDING"
	StatusAccepted  RecommendationStatus = "ACCEPTED"
	StatusDismissed RecommendationStatus = "DISMISSED"
)

var (
	ErrMissingRecipient = errors.New("recommendation recipient is required")
	ErrMissingSender    = errors.New("recommendation sender is required")
	ErrInvalidStatus    = errors.New("recommendation status is invalid")
)

// Recommendation is a game suggestion sent from one user to another.
type Recommendation struct {
	ID        string
	FromID    string
	ToID      string
	GameID    string
	Reason    string
	Status    RecommendationStatus
	CreatedAt time.Time
}

// NewRecommendation validates and constructs a pending recommendation.
func NewRecommendation(fromID, toID, gameID, reason string) (*Recommendation, error) {
	if strings.TrimSpace(fromID) == "" {
		return nil, ErrMissingSender
	}
	if strings.TrimSpace(toID) == "" {
		return nil, ErrMissingRecipient
	}
	return &Recommendation{
		FromID: fromID,
		ToID:   toID,
		GameID: gameID,
		Reason: reason,
		Status: StatusPending,
	}, nil
}

// ParseStatus accepts the wire representation of a status.
func ParseStatus(raw string) (RecommendationStatus, error) {
	status := RecommendationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case StatusPending, StatusAccepted, StatusDismissed:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
