package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"hashtags and whitespace", "hashtag#sample  \n\n hashtag#growth", "#sample #growth"},
		{"inline hashtag", "Hello hashtag#world", "Hello #world"},
		{"case insensitive prefix", "HashTag#Go rocks", "#Go rocks"},
		{"duplicate hashes", "###launch day", "#launch day"},
		{"artifact word", "We love hashtag marketing", "We love marketing"},
		{"keeps words containing hashtag", "hashtags are fun", "hashtags are fun"},
		{"tabs and newlines", "\tline one\n\nline two  ", "line one line two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "Join us", Sanitize(`<script>alert(1)</script>Join <b>us</b>`))
	assert.Equal(t, "Tom &amp; Jerry", Sanitize("Tom & Jerry"))
}

func TestCleanTextKeepsEntitiesDecoded(t *testing.T) {
	assert.Equal(t, "Tom & Jerry's <3 launch", CleanText("Tom & Jerry's  <3 launch"))
	assert.Equal(t, "Tom &amp; Jerry&#39;s &lt;3 launch", Sanitize(CleanText("Tom & Jerry's <3 launch")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "hi", Truncate("hi", 10))
	assert.Equal(t, "", Truncate("hi", 0))
}
