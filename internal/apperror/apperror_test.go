package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"ecosync/backend/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestStore_ForwardsMessageVerbatim(t *testing.T) {
	cause := errors.New(`relation "complaintz" does not exist`)
	err := apperror.Store(cause)

	assert.Equal(t, `relation "complaintz" does not exist`, err.Error())
	assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestStore_KeepsExistingKind(t *testing.T) {
	nf := apperror.NotFound("Complaint not found")
	wrapped := fmt.Errorf("fetch: %w", nf)

	assert.Same(t, wrapped, apperror.Store(wrapped))
	assert.True(t, apperror.Is(apperror.Store(wrapped), apperror.KindNotFound))
}

func TestStore_Nil(t *testing.T) {
	assert.NoError(t, apperror.Store(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(apperror.Validation("title and description are required")))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(apperror.NotFound("User not found")))
	assert.Equal(t, apperror.KindStore, apperror.KindOf(errors.New("boom")))
	assert.False(t, apperror.Is(nil, apperror.KindStore))
}

func TestError_MessageFallbacks(t *testing.T) {
	assert.Equal(t, "not found", (&apperror.Error{Kind: apperror.KindNotFound}).Error())
	assert.Equal(t, "dial tcp: refused", (&apperror.Error{Err: errors.New("dial tcp: refused")}).Error())
}
