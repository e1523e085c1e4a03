package ledger

// ResultStatus classifies the outcome of a ledger operation.
type ResultStatus int

const (
	// StatusSuccess carries a payload and no message.
	StatusSuccess ResultStatus = iota
	// StatusFailure is an ordinary, disclosable client error.
	StatusFailure
	// StatusSecureFailure is an existence- or ownership-sensitive rejection.
	// Its message is for internal logs only and must never reach the caller;
	// disclosing it would let a caller probe card numbers and ownership.
	StatusSecureFailure
)

// Result is the envelope for every operation outcome. The fields are
// unexported so a payload can only exist on success and a message only on the
// failure variants; callers branch on Status rather than unwrapping errors.
type Result[T any] struct {
	status  ResultStatus
	payload T
	message string
}

func Success[T any](payload T) Result[T] {
	return Result[T]{status: StatusSuccess, payload: payload}
}

func Failure[T any](message string) Result[T] {
	return Result[T]{status: StatusFailure, message: message}
}

func SecureFailure[T any](message string) Result[T] {
	return Result[T]{status: StatusSecureFailure, message: message}
}

func (r Result[T]) Status() ResultStatus { return r.status }

// Payload returns the success payload; it is the zero value on failures.
func (r Result[T]) Payload() T { return r.payload }

// Message returns the failure detail. For a secure failure this is internal
// diagnostic text only.
func (r Result[T]) Message() string { return r.message }
