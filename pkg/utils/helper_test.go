package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestGenerateBookingRefFormat(t *testing.T) {
	ref := GenerateBookingRef()

	pattern := regexp.MustCompile(`^WB-\d{8}-\d{6}-\d{4}$`)
	assert.True(t, pattern.MatchString(ref), "unexpected reference format: %s", ref)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mountain Detox Retreat", "mountain-detox-retreat"},
		{"  7-Day  Wellness   Package!  ", "7-day-wellness-package"},
		{"Yoga & Meditation", "yoga-meditation"},
		{"UPPER case", "upper-case"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}
