package step

import "errors"

// A Phase specifies which observation point of an instrumented operation a
// Record captures.
type Phase int

// Possible values for Phase.
const (
	BeforeAction Phase = iota + 1 // before a state-changing operation
	AfterAction                   // after a state-changing operation
	BeforeGather                  // before a passive query
	AfterGather                   // after a passive query
	Failure                       // the operation raised an error
)

// ErrInvalidPhase indicates a serialized phase value is invalid.
var ErrInvalidPhase = errors.New("invalid record phase")

const (
	beforeActionString = "BeforeAction"
	afterActionString  = "AfterAction"
	beforeGatherString = "BeforeGather"
	afterGatherString  = "AfterGather"
	failureString      = "Failure"
)

func (p Phase) String() string {
	switch p {
	case BeforeAction:
		return beforeActionString
	case AfterAction:
		return afterActionString
	case BeforeGather:
		return beforeGatherString
	case AfterGather:
		return afterGatherString
	case Failure:
		return failureString
	default:
		return "[INVALID]"
	}
}

// MarshalText serializes a Phase as a human readable string.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, ErrInvalidPhase
	}
	return []byte(p.String()), nil
}

// MarshalJSON serializes a Phase as a human readable string.
func (p Phase) MarshalJSON() ([]byte, error) {
	txt, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + string(txt) + `"`), nil
}

// UnmarshalText deserializes a Phase from its string representation.
func (p *Phase) UnmarshalText(data []byte) error {
	switch string(data) {
	case beforeActionString:
		*p = BeforeAction
	case afterActionString:
		*p = AfterAction
	case beforeGatherString:
		*p = BeforeGather
	case afterGatherString:
		*p = AfterGather
	case failureString:
		*p = Failure
	default:
		return ErrInvalidPhase
	}
	return nil
}

func (p Phase) valid() bool {
	return p >= BeforeAction && p <= Failure
}
