package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Cursor is the compound pagination key for the protest feed. Sorting is by
// (date_time, id) ascending; cursoring on the same compound key guarantees no
// row is skipped or repeated when two protests share a date_time.
type Cursor struct {
	DateTime time.Time
	ID       string
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%s|%s", c.DateTime.UTC().Format(time.RFC3339Nano), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by Encode.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("malformed cursor")
	}

	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor timestamp: %w", err)
	}

	return Cursor{DateTime: ts, ID: parts[1]}, nil
}
