package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLabelAndValue(t *testing.T) {
	text := "Full Name: John Smith\nEmail Address: john@example.com"

	// The matcher reports every rule hit, including the address rule
	// firing inside "Email Address"; cross-rule dedup is the merger's job.
	candidates := Match(text, 1)
	require.Len(t, candidates, 3)

	name := candidates[0]
	assert.Equal(t, "name", name.Rule)
	assert.Equal(t, "Full Name", name.Label)
	assert.Equal(t, "John Smith", name.Value)
	assert.Equal(t, 1, name.Page)
	assert.Equal(t, 0, name.Offset)
	assert.Equal(t, 0, name.Line)
	assert.False(t, name.Required)

	email := candidates[1]
	assert.Equal(t, "email", email.Rule)
	assert.Equal(t, "Email Address", email.Label)
	assert.Equal(t, "john@example.com", email.Value)
	assert.Equal(t, 1, email.Line)

	address := candidates[2]
	assert.Equal(t, "address", address.Rule)
	assert.True(t, address.Overlaps(email))
}

func TestMatchRequiredMarkers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rule     string
		required bool
	}{
		{
			name:     "asterisk_marks_required",
			text:     "Signature *",
			rule:     "signature",
			required: true,
		},
		{
			name:     "required_word_marks_required",
			text:     "Date of birth (required):",
			rule:     "date",
			required: true,
		},
		{
			name:     "plain_label_not_required",
			text:     "Signature:",
			rule:     "signature",
			required: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := Match(tt.text, 1)
			require.NotEmpty(t, candidates)

			found := false
			for _, c := range candidates {
				if c.Rule == tt.rule {
					assert.Equal(t, tt.required, c.Required)
					found = true
				}
			}
			assert.True(t, found, "expected a candidate for rule %s", tt.rule)
		})
	}
}

func TestMatchMultipleOccurrencesOfOneRule(t *testing.T) {
	text := "Start Date: 01/01/2024\nEnd Date: 12/31/2024"

	candidates := Match(text, 3)

	dates := 0
	for _, c := range candidates {
		if c.Rule == "date" {
			dates++
			assert.Equal(t, 3, c.Page)
		}
	}
	assert.Equal(t, 2, dates)
}

func TestMatchCaseInsensitive(t *testing.T) {
	candidates := Match("EMAIL: a@b.com", 1)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "email", candidates[0].Rule)
}

func TestMatchEmptyText(t *testing.T) {
	assert.Empty(t, Match("", 1))
}

func TestMatchLineTracking(t *testing.T) {
	text := "header line\nsecond line\nPhone: 555-1234"

	candidates := Match(text, 1)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		if c.Rule == "phone" {
			assert.Equal(t, 2, c.Line)
		}
	}
}

func TestCatalogOrderIsStable(t *testing.T) {
	rules := Catalog()
	require.NotEmpty(t, rules)
	assert.Equal(t, "name", rules[0].Name)
	assert.Equal(t, "signature", rules[len(rules)-1].Name)
}
