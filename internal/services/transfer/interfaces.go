// Package transfer implements wallet-to-wallet transfers. A transfer debits
// the sender and credits the receiver in one atomic storage transaction, so
// money is conserved: no partial movement is ever visible.
package transfer

import "context"

// Service is the transfer engine contract.
type Service interface {
	// TransferFunds moves amount (minor units of currency) from the sender's
	// wallet to the receiver's. Both balance changes, the audit payment and
	// the transfer transaction commit as one unit or not at all.
	TransferFunds(ctx context.Context, senderID uint, req TransferRequest) (*TransferResult, error)
}
