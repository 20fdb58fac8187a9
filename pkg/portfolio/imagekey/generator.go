// Package imagekey generates object keys for uploaded images and derives
// keys back from the public URLs the blob stores hand out.
package imagekey

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Extension is the fixed extension for uploaded image keys.
const Extension = ".jpg"

// Generate builds an object key from the record title and the current time:
// <unix-millis>_<sanitized-title>.jpg
func Generate(title string, now time.Time) string {
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), SanitizeTitle(title), Extension)
}

// SanitizeTitle normalizes a title into a storage-safe file name fragment.
// Accented characters are decomposed and their combining marks stripped
// ("été" becomes "ete"); anything outside [a-zA-Z0-9_-] is replaced with an
// underscore.
func SanitizeTitle(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, title)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ParsePublicURL derives the bucket-relative object key from a public URL
// previously returned by a blob store. The bucket name must appear as a path
// segment; everything after it is the key.
func ParsePublicURL(rawURL, bucket string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("image url %q has no scheme", rawURL)
	}

	marker := "/" + bucket + "/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", fmt.Errorf("bucket %q not present in image url path %q", bucket, u.Path)
	}

	key := u.Path[idx+len(marker):]
	if key == "" {
		return "", fmt.Errorf("image url %q has no object key after bucket %q", rawURL, bucket)
	}
	return key, nil
}
