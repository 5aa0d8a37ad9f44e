// Package wireerr defines the stable error taxonomy shared by the wire
// codecs, the field library and the multiplexer. Callers match against
// these sentinels with errors.Is instead of inspecting message text.
package wireerr

import "errors"

var (
	// ErrMalformedWire covers varint overrun, length-delimited underrun,
	// unexpected EOF and an invalid wire type on skip.
	ErrMalformedWire = errors.New("wireforge: malformed wire data")

	// ErrExhaustedBuffer is returned when a borrowed buffer has no room
	// left to accept a write.
	ErrExhaustedBuffer = errors.New("wireforge: borrowed buffer exhausted")

	// ErrUnknownType is returned when Any (or the multiplexer directly)
	// is asked to resolve a type name that was never registered.
	ErrUnknownType = errors.New("wireforge: unknown message type")

	// ErrDoubleParse is returned when ParseProto/ParseROS is called on a
	// message that has already been populated.
	ErrDoubleParse = errors.New("wireforge: message already populated")

	// ErrGroupUnsupported is returned when a proto group wire type (3 or
	// 4) is encountered; groups are rejected, never converted.
	ErrGroupUnsupported = errors.New("wireforge: proto groups are not supported")
)

// Wrap attaches ctx to err while keeping err matchable via errors.Is/As.
func Wrap(ctx string, err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{ctx: ctx, err: err}
}

type wrapped struct {
	ctx string
	err error
}

func (w *wrapped) Error() string { return w.ctx + ": " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
