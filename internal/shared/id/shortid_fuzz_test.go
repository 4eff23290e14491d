package id

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func FuzzParsePrefixedID(f *testing.F) {
	seeds := []string{
		"wo_xK9mP2vL3nQa",
		"dwo_abc123",
		"",
		"nounderscore",
		"_leadingunderscore",
		"trailing_",
		"multiple_under_scores_here",
		"中文_测试",
		strings.Repeat("a", 1000) + "_" + strings.Repeat("b", 1000),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)

		if !strings.Contains(input, "_") {
			if err == nil {
				t.Errorf("ParsePrefixedID(%q) should fail without an underscore", input)
			}
			return
		}

		if err != nil {
			t.Fatalf("ParsePrefixedID(%q) unexpected error: %v", input, err)
		}
		if prefix+"_"+shortID != input {
			t.Errorf("ParsePrefixedID(%q) = (%q, %q) does not round-trip", input, prefix, shortID)
		}
	})
}

func TestNewWorkOrderID(t *testing.T) {
	woID := NewWorkOrderID()
	dwoID := NewDeletedWorkOrderID()

	require.NoError(t, ValidatePrefix(woID, PrefixWorkOrder))
	require.NoError(t, ValidatePrefix(dwoID, PrefixDeletedWorkOrder))
	assert.Len(t, woID, len(PrefixWorkOrder)+1+DefaultLength)
	assert.NotEqual(t, woID, NewWorkOrderID())
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("wo_abc", PrefixWorkOrder))
	assert.Error(t, ValidatePrefix("dwo_abc", PrefixWorkOrder))
	assert.Error(t, ValidatePrefix("wo_", PrefixWorkOrder))
	assert.Error(t, ValidatePrefix("abc", PrefixWorkOrder))
}
