package charconv

// Status reports how an incremental conversion call ended. Every call
// consumes as much input and produces as much output as the returned counts
// say, never more.
type Status int

const (
	// InputExhausted means the whole of src was consumed. If the call was
	// made with last set, the stream is finished and the instance must not
	// be used again.
	InputExhausted Status = iota

	// OutputFull means dst has no room left for another full character.
	// Re-present the unconsumed suffix of src with more output space.
	OutputFull

	// Malformed means decoding stopped at an invalid byte sequence. The
	// counts cover only the valid prefix; the offending bytes are left
	// unconsumed. Only the *WithoutReplacement decode calls return it.
	Malformed

	// Unmappable means encoding stopped at a character the target encoding
	// cannot represent. That character's input units are left unconsumed.
	// Only the *WithoutReplacement encode calls return it.
	Unmappable
)

func (s Status) String() string {
	switch s {
	case InputExhausted:
		return "InputExhausted"
	case OutputFull:
		return "OutputFull"
	case Malformed:
		return "Malformed"
	case Unmappable:
		return "Unmappable"
	}
	return "Status(?)"
}
