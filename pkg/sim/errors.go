package sim

import "fmt"

// The four error classes here are all programming-usage errors: they
// are returned synchronously to the caller and never retried or
// recovered internally. There is no transient-failure model in this
// core; the "network" is an in-memory pool.

// ConfigurationError reports an invalid process-id set at construction.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// UnknownProcessError reports an operation referencing a process ID
// that was not registered at construction.
type UnknownProcessError struct {
	ID string
}

func (e *UnknownProcessError) Error() string {
	return fmt.Sprintf("unknown process %q", e.ID)
}

// MessageNotPendingError reports a delivery attempt on a message that
// is not currently pending: either already delivered or never sent.
type MessageNotPendingError struct {
	MessageID string
}

func (e *MessageNotPendingError) Error() string {
	return fmt.Sprintf("message %q is not pending", e.MessageID)
}

// AddressMismatchError reports a delivery targeted at a process other
// than the message's declared receiver, with address checking enabled.
type AddressMismatchError struct {
	MessageID string
	Declared  string
	Target    string
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("message %q is addressed to %q, not %q",
		e.MessageID, e.Declared, e.Target)
}
