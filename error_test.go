package kickprof_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/kickprof"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application errors", func(t *testing.T) {
		t.Parallel()

		err := kickprof.Errorf(kickprof.ENOTFOUND, "profile not found")
		assert.Equal(t, kickprof.ENOTFOUND, kickprof.ErrorCode(err))
	})

	t.Run("returns code for wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", kickprof.Errorf(kickprof.EINVALID, "bad input"))
		assert.Equal(t, kickprof.EINVALID, kickprof.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, kickprof.EINTERNAL, kickprof.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", kickprof.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application errors", func(t *testing.T) {
		t.Parallel()

		err := kickprof.Errorf(kickprof.EINVALID, "username %q is invalid", "x y")
		assert.Equal(t, `username "x y" is invalid`, kickprof.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", kickprof.ErrorMessage(errors.New("boom")))
	})
}
