package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"kelly@surfshop.fr",
		"first.last@example.co.uk",
		" padded@example.com ",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"spaces in@example.com",
		"missing@tld",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+33612345678",
		"+1 (555) 123-4567",
		"33 6 12 34 56 78",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{
		"",
		"abc",
		"+0123456",
		"0612345678",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}

func TestCountryCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"France", "FR"},
		{"SPAIN", "ES"},
		{" united kingdom ", "GB"},
		{"usa", "US"},
		{"Atlantis", "FR"},
		{"", "FR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CountryCode(tt.in), tt.in)
	}
}
