package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 token from a record date and creation time,
// used for keyset pagination ordered by (date, created_at).
func EncodeToken(recordDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", recordDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 token back into record date and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	recordDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (record date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return recordDate, createdAt, nil
}

// EncodeIDToken creates a token carrying a single opaque cursor value,
// used for pagination ordered by a monotonically increasing column.
func EncodeIDToken(id string) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

// DecodeIDToken decodes a single-value cursor token.
func DecodeIDToken(token string) (string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return string(decodedBytes), nil
}
