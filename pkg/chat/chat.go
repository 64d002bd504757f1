package chat

import (
	"strconv"
	"time"

	"tableflip.dev/dreem/pkg/timeutil"
)

// SentinelTitle is the placeholder a fresh chat carries until the first user
// message names it.
const SentinelTitle = "New Chat"

// titleLimit is the maximum number of characters kept from the first user
// message when deriving a chat title.
const titleLimit = 50

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn. Messages are immutable once appended.
type Message struct {
	ID        string             `json:"id"`
	Role      string             `json:"role"`
	Content   string             `json:"content"`
	Timestamp timeutil.Timestamp `json:"timestamp"`
}

// Chat holds an append-only message list.
type Chat struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Messages  []Message          `json:"messages"`
	CreatedAt timeutil.Timestamp `json:"createdAt"`
	UpdatedAt timeutil.Timestamp `json:"updatedAt"`
}

// NewID derives a chat id from the current time, millisecond resolution, as
// the stored format has always done.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// DeriveTitle truncates the first user message to the title limit, appending
// an ellipsis when it was cut.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}
