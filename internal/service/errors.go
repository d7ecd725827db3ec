package service

import "errors"

var (
	// ErrInvalidAmount is returned when an expense or settlement amount is
	// not a positive number.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSamePayerReceiver is returned when a settlement names the same
	// member on both sides.
	ErrSamePayerReceiver = errors.New("settlement payer and receiver must differ")

	// ErrLastMember is returned when removing a member would leave the group
	// empty.
	ErrLastMember = errors.New("cannot remove the last member of a group")

	// ErrInvalidCurrency is returned for unknown ISO 4217 currency codes.
	ErrInvalidCurrency = errors.New("unknown currency code")
)
