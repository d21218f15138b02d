package ledger

import "fmt"

// ValidationError reports a malformed or out-of-domain record handed to the
// store. It is caller-facing and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}

// NotFoundError reports a period key that cannot refer to any data, like a
// month 13. A well-formed key with zero records is not an error.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such period %q", e.Key)
}

// PersistenceError reports a failure to durably write a record or a report
// artifact. The previous persisted state is left intact; callers may retry.
type PersistenceError struct {
	Op   string // "append", "persist"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
