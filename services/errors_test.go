package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceErrorUnwraps(t *testing.T) {
	err := &PersistenceError{Op: "delete trip", Err: sql.ErrNoRows}

	// Sentinel checks must see through the wrapper.
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Contains(t, err.Error(), "delete trip")

	var persistErr *PersistenceError
	assert.ErrorAs(t, error(err), &persistErr)
}

func TestParseErrorUnwraps(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &ParseError{Service: "itinerary", Err: inner}

	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "itinerary")
}
