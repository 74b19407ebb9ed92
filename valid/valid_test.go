package valid_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/valid"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		Given   string
		Expect  string
		IsValid bool
	}{
		{Given: "  Ada@Example.COM ", Expect: "ada@example.com", IsValid: true},
		{Given: "first.last+tag@sub.example.org", Expect: "first.last+tag@sub.example.org", IsValid: true},
		{Given: "not-an-email"},
		{Given: "a@b"},
		{Given: ""},
	}

	for _, tt := range tests {
		got, err := valid.Email(tt.Given)
		if tt.IsValid {
			require.NoError(t, err, tt.Given)
			assert.Equal(t, tt.Expect, got)
		} else {
			assert.Error(t, err, tt.Given)
		}
	}
}

func TestRecipient(t *testing.T) {
	u := &model.User{ID: "1", Email: " ADA@example.com"}
	require.NoError(t, valid.Recipient(u))
	assert.Equal(t, "ada@example.com", u.Email)

	for _, u := range []*model.User{
		{Email: "ada@example.com"},
		{ID: "1"},
		{ID: "1", Email: "nope"},
	} {
		err := valid.Recipient(u)
		require.Error(t, err)

		var e *errors.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, http.StatusBadRequest, e.StatusCode())
		assert.NotEmpty(t, e.ClientReport())
	}
}
