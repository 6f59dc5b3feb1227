package domain

import "github.com/dquesada/tellercore-backend/internal/validate"

// Client represents an account owner. The ledger core only reads client
// fields: the identification for ownership checks during transfers and
// the phone number as the one-time-code delivery target.
type Client struct {
	ID    string // national identification, unique
	Name  string
	Phone string // 8 digits, SMS target
	Email string
}

// NewClient validates the contact fields and builds a client.
func NewClient(id, name, phone, email string) (*Client, error) {
	if !validate.Phone(phone) {
		return nil, NewFormatError("phone")
	}
	if !validate.Email(email) {
		return nil, NewFormatError("email")
	}
	return &Client{ID: id, Name: name, Phone: phone, Email: email}, nil
}

// SetPhone replaces the phone number after validating its format.
func (c *Client) SetPhone(phone string) error {
	if !validate.Phone(phone) {
		return NewFormatError("phone")
	}
	c.Phone = phone
	return nil
}

// SetEmail replaces the email address after validating its format.
func (c *Client) SetEmail(email string) error {
	if !validate.Email(email) {
		return NewFormatError("email")
	}
	c.Email = email
	return nil
}
