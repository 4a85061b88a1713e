package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsCompleteCandidate(t *testing.T) {
	c := NewCandidate("test session", 2, time.Now())
	require.NoError(t, Validate(c))
}

func TestValidateMissingFields(t *testing.T) {
	name := "x"
	elapsed := 1.0
	ts := Timestamp{Time: time.Now()}

	cases := map[string]struct {
		candidate Candidate
		field     string
	}{
		"empty":        {Candidate{}, "name"},
		"no time":      {Candidate{Name: &name, CreatedAt: &ts}, "time"},
		"no createdAt": {Candidate{Name: &name, Time: &elapsed}, "createdAt"},
		"zero createdAt": {
			Candidate{Name: &name, Time: &elapsed, CreatedAt: &Timestamp{}}, "createdAt",
		},
	}

	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			err := Validate(tc.candidate)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, KindMissingField, verr.Kind)
			assert.Equal(t, tc.field, verr.Field)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Empty(t, verr.Message())
		})
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		name    string
		kind    Kind
		message string
	}{
		{"", KindBlankName, MessageBlankName},
		{" ", KindBlankName, MessageBlankName},
		{"\t\n ", KindBlankName, MessageBlankName},
		{"\ufeff", KindBlankName, MessageBlankName},
		{"\u00a0\ufeff\u2003", KindBlankName, MessageBlankName},
		{strings.Repeat("a", 301), KindNameTooLong, MessageNameTooLong},
		{" " + strings.Repeat("a", 301) + " ", KindNameTooLong, MessageNameTooLong},
	}

	for _, tc := range cases {
		verr := ValidateName(tc.name)
		require.NotNil(t, verr, "name %q", tc.name)
		assert.Equal(t, tc.kind, verr.Kind)
		assert.Equal(t, tc.message, verr.Message())
	}
}

func TestValidateNameBoundaries(t *testing.T) {
	assert.Nil(t, ValidateName("a"))
	assert.Nil(t, ValidateName(strings.Repeat("a", MaxNameLength)))
	assert.Nil(t, ValidateName("  "+strings.Repeat("a", MaxNameLength)+"  "))
	assert.Nil(t, ValidateName("\ufeff"+strings.Repeat("a", MaxNameLength)+"\ufeff"))
	// Characters, not bytes.
	assert.Nil(t, ValidateName(strings.Repeat("é", MaxNameLength)))
}

func TestValidationErrorText(t *testing.T) {
	assert.Equal(t, "invalid name", ValidateName(" ").Error())
	assert.Equal(t, "name too long", ValidateName(strings.Repeat("a", 301)).Error())
	assert.Equal(t, "missing time", (&ValidationError{Kind: KindMissingField, Field: "time"}).Error())
}
