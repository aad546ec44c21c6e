package models

import (
	"time"

	"github.com/stridex/stridex/internal/constants"
)

// JournalEntry is a free-text reflection. Sentiment is fixed at write time.
type JournalEntry struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Text      string              `json:"text"`
	Sentiment constants.Sentiment `json:"sentiment"`
	XPAwarded int                 `json:"xp_awarded"`
}

// ChatMessage is one line of the coach conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
