package rwerr

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCode(t *testing.T) {
	err := New(NewNoBody{Operation: "double"})
	assert.Equal(t, "(E006) operation 'double' has no recorded body to derive a default rule from", FormatWithCode(err))
	assert.NotEmpty(t, err.getStack())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      ErrCode
		malformed bool
	}{
		{"plain", New(NewMultipleVariadic{Rule: "r", Symbol: "f", Count: 2}), MultipleVariadic, true},
		{"wrapped with fmt", fmt.Errorf("executing: %w", New(NewUnresolvedTypeVar{Rule: "r"})), UnresolvedTypeVar, true},
		{"wrapped with pkg/errors", pkgerrors.Wrap(New(NewOutOfFuel{Fuel: 3}), "simplifying"), OutOfFuel, false},
		{"in an aggregate", (&Errors{}).With(New(NewUnboundWildcard{Rule: "r", Name: "x"})), UnboundWildcard, true},
		{"foreign", errors.New("boom"), None, false},
		{"nil", nil, None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.malformed, IsMalformedRule(tt.err))
		})
	}
}

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.NoError(t, errs.Err())

	errs = errs.With(New(NewDuplicateParam{Rule: "r", Name: "a"}))
	errs = errs.Merge((*Errors)(nil).With(New(NewInvalidParam{Rule: "r", Reason: "empty parameter name"})))
	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Error(t, errs.Err())
	assert.Contains(t, errs.Error(), "(E001)")
	assert.Contains(t, errs.Error(), "(E002)")

	var rwErr RewriteError
	assert.True(t, errors.As(errs.Err(), &rwErr))
	assert.Equal(t, DuplicateParam, rwErr.Code())

	logged := errs.LogValue()
	assert.Equal(t, slog.KindGroup, logged.Kind())
	assert.Len(t, logged.Group(), 2)
}
