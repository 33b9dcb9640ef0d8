package model

import "time"

// TicketStatus is the open/closed state of a support conversation.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// TicketReply is one message in a support conversation.
type TicketReply struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole Role      `json:"authorRole"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Ticket is a support conversation between a customer and the back office.
// The unread flags track which side has messages waiting.
type Ticket struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	OrderID     string        `json:"orderId,omitempty"`
	UserName    string        `json:"userName"`
	Email       string        `json:"email"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	Status      TicketStatus  `json:"status"`
	Replies     []TicketReply `json:"replies"`
	UnreadAdmin bool          `json:"unreadAdmin"`
	UnreadUser  bool          `json:"unreadUser"`
	CreatedAt   time.Time     `json:"createdAt"`
}
