package digest

import (
	"crypto/sha1"
	"encoding/hex"
)

// Digest is a hex-encoded fingerprint of response body bytes. The zero value
// means "not yet observed".
type Digest string

// Sum fingerprints body bytes for drift comparison. Bytes are treated as
// opaque; no normalization is applied, so any content change surfaces as a
// different digest. SHA-1 is plenty here, collisions are not adversarial.
func Sum(body []byte) Digest {
	sum := sha1.Sum(body)
	return Digest(hex.EncodeToString(sum[:]))
}

// Short returns a truncated form for log lines.
func (d Digest) Short() string {
	if len(d) <= 8 {
		return string(d)
	}
	return string(d[:8])
}
