package lottery

import "errors"

// Failure codes returned to callers. They match the messages of the on-chain
// lottery contract so clients built against it keep working.
const (
	CodeNoTicketsAvailable  = "NO_TICKETS_AVAILABLE"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeNotAuthorised       = "NOT_AUTHORISED"
	CodeGameIsYetToEnd      = "GAME_IS_YET_TO_END"
	CodeNotAllowed          = "NOT_ALLOWED"
	CodeInvalidRandomNumber = "INVALID_RANDOM_NUMBER"
	CodeTransferFailed      = "TRANSFER_FAILED"
)

// ErrorKind tells a recoverable validation failure apart from a failed transfer
type ErrorKind int

const (
	// ValidationError - the call was rejected before any state was touched
	ValidationError ErrorKind = iota
	// TransferError - the ledger refused a refund or payout, the call was discarded
	TransferError
)

// Error is the error type returned by every Engine operation
type Error struct {
	Code string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}

	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two lottery errors by their code, so a wrapped ErrTransferFailed
// still satisfies errors.Is(err, ErrTransferFailed)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrSoldOut             = &Error{Code: CodeNoTicketsAvailable, Kind: ValidationError}
	ErrInsufficientPayment = &Error{Code: CodeInvalidAmount, Kind: ValidationError}
	ErrNotAuthorized       = &Error{Code: CodeNotAuthorised, Kind: ValidationError}
	ErrRoundNotComplete    = &Error{Code: CodeGameIsYetToEnd, Kind: ValidationError}
	ErrRejected            = &Error{Code: CodeNotAllowed, Kind: ValidationError}
	ErrInvalidSeed         = &Error{Code: CodeInvalidRandomNumber, Kind: ValidationError}
	ErrTransferFailed      = &Error{Code: CodeTransferFailed, Kind: TransferError}
)

var (
	errInvalidTicketCost   = errors.New("ticket cost must be positive")
	errInvalidMaxTickets   = errors.New("max tickets must be positive")
	errEmptyOperator       = errors.New("operator can not be empty")
	errNilLedger           = errors.New("nil ledger")
	errNilRandomness       = errors.New("nil randomness source")
	errRegistryFull        = errors.New("entrant registry is full")
	errIndexOutOfRange     = errors.New("ticket index out of range")
	errInvalidAmount       = errors.New("amount must not be negative")
	errInsufficientCustody = errors.New("amount exceeds escrowed funds")
	errInvalidSnapshot     = errors.New("invalid snapshot")
)

func transferFailed(err error) error {
	return &Error{Code: CodeTransferFailed, Kind: TransferError, Err: err}
}

// IsValidationError reports whether err was a rejected call that left the state untouched
func IsValidationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ValidationError
}
