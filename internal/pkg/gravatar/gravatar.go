package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// URL derives a deterministic avatar URL from an email address. Same email,
// same URL, regardless of case or surrounding whitespace.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
