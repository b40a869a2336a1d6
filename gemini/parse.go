package gemini

import "strings"

// StripCodeFence removes the markdown code fencing Gemini tends to wrap JSON
// fragments in despite being told not to. Idempotent.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseImageData splits an optional data-URI prefix from a base64 image
// payload and detects the MIME type from it, defaulting to JPEG.
func ParseImageData(s string) (mimeType, payload string) {
	mimeType = "image/jpeg"
	payload = s

	header, rest, ok := strings.Cut(s, ",")
	if !ok {
		return mimeType, payload
	}
	payload = rest

	switch {
	case strings.Contains(header, "image/png"):
		mimeType = "image/png"
	case strings.Contains(header, "image/webp"):
		mimeType = "image/webp"
	case strings.Contains(header, "image/gif"):
		mimeType = "image/gif"
	}
	return mimeType, payload
}
