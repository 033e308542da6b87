package pagination

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Default and maximum page sizes for cursor-based listing.
const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// cursorVersion prefixes every token so the cursor layout can change later
// without breaking clients that replay stored tokens.
const cursorVersion = "v1"

// Params holds cursor pagination parameters extracted from query strings.
type Params struct {
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Cursor: "",
		Limit:  DefaultLimit,
	}
}

// FromRequest extracts cursor pagination parameters from an HTTP request.
// An out-of-range limit is clamped rather than rejected.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	p.Cursor = r.URL.Query().Get("cursor")

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 {
			p.Limit = v
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}

// Page wraps one page of a cursor-based listing. Next is nil once the end of
// the collection has been reached.
type Page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

// NewPage creates a page from the given items and next-cursor token.
// An empty token means the listing is exhausted.
func NewPage[T any](items []T, next string) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Items: items}
	if next != "" {
		p.Next = &next
	}
	return p
}

// EncodeCursor builds an opaque token for the given index position.
func EncodeCursor(position int) string {
	raw := fmt.Sprintf("%s:%d", cursorVersion, position)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses an opaque token back into an index position.
// An empty token decodes to position 0 (start of the collection).
func DecodeCursor(token string) (int, error) {
	if token == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}

	prefix := cursorVersion + ":"
	s := string(raw)
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("decode cursor: unknown token version")
	}

	position, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
	if err != nil || position < 0 {
		return 0, fmt.Errorf("decode cursor: malformed position")
	}

	return position, nil
}
