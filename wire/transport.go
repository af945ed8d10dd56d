package wire

import (
	"encoding/base64"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// EncodeBase64 wraps Encode for text-based transports (JSON payloads,
// GraphQL string fields) that cannot carry raw bytes.
func (c *Codec) EncodeBase64(fd healthplan.FormData) string {
	return base64.StdEncoding.EncodeToString(c.Encode(fd))
}

// DecodeBase64 is the inverse of EncodeBase64. A string that is not valid
// base64 is reported as a malformed message, same as an unparseable byte
// stream.
func (c *Codec) DecodeBase64(s string) (healthplan.FormData, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return healthplan.FormData{}, malformed("invalid base64 payload: %v", err)
	}
	return c.Decode(raw)
}

// EncodeBase64 serializes with the package-level codec.
func EncodeBase64(fd healthplan.FormData) string {
	return defaultCodec.EncodeBase64(fd)
}

// DecodeBase64 parses with the package-level codec.
func DecodeBase64(s string) (healthplan.FormData, error) {
	return defaultCodec.DecodeBase64(s)
}
