package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by account and teller operations.
// Callers branch with errors.Is; no error-message matching anywhere.
var (
	// ErrInvalidFormat signals a malformed PIN, phone number or email.
	// Wrap with the offending field name via NewFormatError.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidAmount signals a non-positive deposit or withdrawal amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAuthenticationFailed signals a wrong PIN; an attempt was consumed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAccountLocked signals an operation refused because the account is
	// locked; no attempt is consumed.
	ErrAccountLocked = errors.New("account locked")

	// ErrInsufficientFunds signals that balance < amount + commission.
	// The balance and the transaction log are untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConfirmationFailed signals a wrong one-time confirmation code.
	ErrConfirmationFailed = errors.New("confirmation code mismatch")

	// ErrOwnershipMismatch signals a transfer between accounts of
	// different clients.
	ErrOwnershipMismatch = errors.New("accounts belong to different clients")

	// ErrAccountNotFound signals an unknown account number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrClientNotFound signals an unknown client identification.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientExists signals an attempt to register a client under an
	// identification that is already taken.
	ErrClientExists = errors.New("client already exists")

	// ErrCrypto signals a credential vault integrity failure (malformed
	// blob, wrong key size, tampered ciphertext). Never part of normal
	// control flow; the operation aborts without partial state changes.
	ErrCrypto = errors.New("credential vault failure")

	// ErrCollaboratorUnavailable signals a failed call to an external
	// collaborator (rate provider, code channel, persistence).
	ErrCollaboratorUnavailable = errors.New("external collaborator unavailable")
)

// NewFormatError wraps ErrInvalidFormat with the field that failed
// validation, so callers can report it without parsing the message.
func NewFormatError(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, field)
}
