package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeISBN ensures separators are stripped and x is uppercased.
func TestNormalizeISBN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated isbn-13", "978-0-439-70818-0", "9780439708180"},
		{"spaced isbn-10", "0 439 70818 4", "0439708184"},
		{"lowercase check digit", "080442957x", "080442957X"},
		{"already normalized", "9780439708180", "9780439708180"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeISBN(tc.in))
		})
	}
}

// TestNormalizeISBNIdempotence ensures normalizing twice changes nothing.
func TestNormalizeISBNIdempotence(t *testing.T) {
	once := NormalizeISBN("978-0-439-70818-0")
	assert.Equal(t, once, NormalizeISBN(once))
}

// TestIsValidISBN10 covers the mod-11 checksum including the X check digit.
func TestIsValidISBN10(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.True(t, IsValidISBN("0439708184"))
		assert.True(t, IsValidISBN("0-439-70818-4"))
		assert.True(t, IsValidISBN("080442957X"))
		assert.True(t, IsValidISBN("080442957x"))
	})

	t.Run("single digit mutation breaks the checksum", func(t *testing.T) {
		assert.False(t, IsValidISBN("0439708185"))
		assert.False(t, IsValidISBN("0449708184"))
	})

	t.Run("exactly one check digit closes each prefix", func(t *testing.T) {
		valids := 0
		for d := 0; d <= 9; d++ {
			if IsValidISBN(fmt.Sprintf("043970818%d", d)) {
				valids++
			}
		}
		if IsValidISBN("043970818X") {
			valids++
		}
		assert.Equal(t, 1, valids)
	})

	t.Run("x only allowed as check digit", func(t *testing.T) {
		assert.False(t, IsValidISBN("04397X8184"))
	})
}

// TestIsValidISBN13 covers the alternating 1/3 weights checksum.
func TestIsValidISBN13(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.True(t, IsValidISBN("9780439708180"))
		assert.True(t, IsValidISBN("978-0-439-70818-0"))
		assert.True(t, IsValidISBN("9780306406157"))
	})

	t.Run("single digit mutation breaks the checksum", func(t *testing.T) {
		assert.False(t, IsValidISBN("9780439708181"))
		assert.False(t, IsValidISBN("9790439708180"))
	})

	t.Run("exactly one check digit closes each prefix", func(t *testing.T) {
		valids := 0
		for d := 0; d <= 9; d++ {
			if IsValidISBN(fmt.Sprintf("978043970818%d", d)) {
				valids++
			}
		}
		assert.Equal(t, 1, valids)
	})

	t.Run("no x check digit for isbn-13", func(t *testing.T) {
		assert.False(t, IsValidISBN("978043970818X"))
	})
}

// TestIsValidISBNLengths rejects anything but 10 or 13 normalized chars.
func TestIsValidISBNLengths(t *testing.T) {
	assert.False(t, IsValidISBN(""))
	assert.False(t, IsValidISBN("123"))
	assert.False(t, IsValidISBN("043970818"))
	assert.False(t, IsValidISBN("97804397081800"))
	assert.False(t, IsValidISBN("not-an-isbn"))
}
