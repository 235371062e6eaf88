package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ErrorKind
	}{
		{
			name: "tagged error",
			err:  goerr.New("no such repo", goerr.T(types.ErrTagNotFound)),
			want: types.KindNotFound,
		},
		{
			name: "tag survives goerr wrapping",
			err:  goerr.Wrap(goerr.New("slow", goerr.T(types.ErrTagTimeout)), "chat failed"),
			want: types.KindTimeout,
		},
		{
			name: "tag survives fmt wrapping",
			err:  fmt.Errorf("outer: %w", goerr.New("limited", goerr.T(types.ErrTagRateLimited))),
			want: types.KindRateLimited,
		},
		{
			name: "wrapped not found keeps its kind",
			err:  goerr.Wrap(goerr.New("missing", goerr.T(types.ErrTagNotFound)), "lookup failed"),
			want: types.KindNotFound,
		},
		{
			name: "outer unknown tag does not override inner tag",
			err: goerr.Wrap(
				goerr.New("missing", goerr.T(types.ErrTagNotFound)),
				"retagged", goerr.T(types.ErrTagUnknown),
			),
			want: types.KindNotFound,
		},
		{
			name: "validation tag takes precedence over remote tag",
			err: goerr.Wrap(
				goerr.New("expired", goerr.T(types.ErrTagUnauthorized)),
				"bad input", goerr.T(types.ErrTagEmptyQuestion),
			),
			want: types.KindEmptyQuestion,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: types.KindUnknown,
		},
		{
			name: "nil error",
			err:  nil,
			want: types.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, types.KindOf(tt.err), tt.want)
		})
	}
}

func TestErrorKind_IsValidation(t *testing.T) {
	gt.True(t, types.KindEmptyQuestion.IsValidation())
	gt.True(t, types.KindTooManyRepositories.IsValidation())
	gt.False(t, types.KindNotFound.IsValidation())
	gt.False(t, types.KindUnknown.IsValidation())
}

func TestHasKnownKind(t *testing.T) {
	gt.True(t, types.HasKnownKind(goerr.New("x", goerr.T(types.ErrTagUnknown))))
	gt.False(t, types.HasKnownKind(goerr.New("x")))
}

func TestParseMode(t *testing.T) {
	mode, err := types.ParseMode("")
	gt.NoError(t, err)
	gt.Equal(t, mode, types.ModeSingle)

	mode, err = types.ParseMode("multi")
	gt.NoError(t, err)
	gt.Equal(t, mode, types.ModeMulti)

	_, err = types.ParseMode("batch")
	gt.Error(t, err)
}
