package entities

import "time"

// Client is an account record of the studio's client portal.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The contract flow only reads clients: name/email are snapshotted onto the
// contract at send-time.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
