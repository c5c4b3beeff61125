package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
	}
	ErrCurrencyMismatch = &DomainError{
		Code:    "CURRENCY_MISMATCH",
		Message: "currency mismatch",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrPaymentNotFound = &DomainError{
		Code:    "PAYMENT_NOT_FOUND",
		Message: "payment not found",
	}
	ErrSelfTransfer = &DomainError{
		Code:    "SELF_TRANSFER",
		Message: "cannot transfer to self",
	}
	ErrInvalidPaymentState = &DomainError{
		Code:    "INVALID_STATE",
		Message: "payment is not in a refundable state",
	}
	ErrVerificationFailed = &DomainError{
		Code:    "VERIFICATION_FAILED",
		Message: "payment verification failed",
	}
	ErrPersistenceConflict = &DomainError{
		Code:    "PERSISTENCE_CONFLICT",
		Message: "transaction conflicted with a concurrent operation",
	}
)
