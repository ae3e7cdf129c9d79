package application

import (
	"errors"
	"fmt"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid social input")
	// ErrConflict signals the record already exists.
	ErrConflict = errors.New("social record conflict")
	// ErrGameNotFound signals the referenced app id is unknown upstream.
	ErrGameNotFound = errors.New("game not found")
	// ErrAlreadyPlayed signals the recipient has the game in the played list.
	ErrAlreadyPlayed = fmt.Errorf("%w: user already played this game", ErrInvalidInput)
	// ErrAlreadyWishlisted signals the recipient has the game wishlisted.
	ErrAlreadyWishlisted = fmt.Errorf("%w: user already has this game in wishlist", ErrInvalidInput)
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyContent) ||
		errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrMissingRecipient) ||
		errors.Is(err, domain.ErrMissingSender) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
