package ledger

import "errors"

var (
	// ErrInvalidAmount rejects non-positive deposit and withdrawal amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidQuantity rejects non-positive buy and sell quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientFunds rejects withdrawals and buys exceeding the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares rejects sells exceeding the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")
)
