package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	bare := `[{"id": 1, "sentiment": "Positive"}]`
	fenced := "```json\n" + bare + "\n```"

	assert.Equal(t, bare, StripCodeFence(fenced))
	assert.Equal(t, bare, StripCodeFence(bare))
}

func TestStripCodeFenceIdempotent(t *testing.T) {
	fenced := "```json\n[1, 5, 12]\n```"

	once := StripCodeFence(fenced)
	assert.Equal(t, once, StripCodeFence(once))
	assert.Equal(t, "[1, 5, 12]", once)
}

func TestParseImageDataWithDataURI(t *testing.T) {
	cases := []struct {
		uri  string
		mime string
	}{
		{"data:image/png;base64,AAAA", "image/png"},
		{"data:image/webp;base64,BBBB", "image/webp"},
		{"data:image/gif;base64,CCCC", "image/gif"},
		{"data:image/jpeg;base64,DDDD", "image/jpeg"},
	}

	for _, tc := range cases {
		mime, payload := ParseImageData(tc.uri)
		assert.Equal(t, tc.mime, mime)
		assert.Len(t, payload, 4)
	}
}

func TestParseImageDataBarePayload(t *testing.T) {
	mime, payload := ParseImageData("AAAABBBB")

	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, "AAAABBBB", payload)
}
