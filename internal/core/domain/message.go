package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Sender identifies which side of a support conversation wrote a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

const MaxMessageLength = 2000

// Message is an append-only chat record. Timestamp is assigned by the server
// when the message is persisted.
type Message struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Sender    Sender    `json:"sender" bson:"sender"`
	Message   string    `json:"message" bson:"message"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Validate enforces the record invariants checked before persistence.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return Invalid("userId is required")
	}
	if m.Sender != SenderUser && m.Sender != SenderAdmin {
		return Invalid("sender must be user or admin")
	}
	if strings.TrimSpace(m.Message) == "" {
		return Invalid("message is required")
	}
	if utf8.RuneCountInString(m.Message) > MaxMessageLength {
		return Invalid("message is too long")
	}
	return nil
}

// Page selects a window of an ordered listing. Limit 0 means no limit.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of records before the page.
func (p Page) Skip() int64 {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	return int64((p.Page - 1) * p.Limit)
}
