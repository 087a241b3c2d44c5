package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReview(t *testing.T) {
	base := Review{Rating: 4, Comment: "great stay"}
	assert.NoError(t, base.ValidateReview())

	tests := []struct {
		name    string
		rating  int
		comment string
	}{
		{"rating zero", 0, "great stay"},
		{"rating above five", 6, "great stay"},
		{"comment too short", 4, "ok"},
		{"comment too long", 4, strings.Repeat("a", MaxCommentLength+1)},
		{"empty comment", 4, ""},
		{"two accented characters", 4, "éé"},
		{"multibyte comment too long", 4, strings.Repeat("宿", MaxCommentLength+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Review{Rating: tc.rating, Comment: tc.comment}
			assert.ErrorIs(t, r.ValidateReview(), ErrValidation)
		})
	}
}

func TestReviewSanitizeTrimsComment(t *testing.T) {
	r := Review{Comment: "  quiet and clean  "}
	r.Sanitize()
	assert.Equal(t, "quiet and clean", r.Comment)
}

func TestValidateReviewBoundaryComment(t *testing.T) {
	short := Review{Rating: 3, Comment: strings.Repeat("a", MinCommentLength)}
	assert.NoError(t, short.ValidateReview())

	long := Review{Rating: 3, Comment: strings.Repeat("a", MaxCommentLength)}
	assert.NoError(t, long.ValidateReview())
}

// Bounds are character counts, not byte counts: a 200-character CJK comment is
// 600 bytes and must still be accepted.
func TestValidateReviewCountsCharactersNotBytes(t *testing.T) {
	cjk := Review{Rating: 4, Comment: strings.Repeat("宿", 200)}
	assert.NoError(t, cjk.ValidateReview())

	maxMultibyte := Review{Rating: 4, Comment: strings.Repeat("宿", MaxCommentLength)}
	assert.NoError(t, maxMultibyte.ValidateReview())
}
