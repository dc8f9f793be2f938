package sponge

import "fmt"

// Direction tells whether a logged batch went into or came out of the sponge.
type Direction uint8

const (
	Absorb Direction = iota
	Squeeze
)

func (d Direction) String() string {
	switch d {
	case Absorb:
		return "Absorb"
	case Squeeze:
		return "Squeeze"
	}
	return "Unknown"
}

const (
	// absorbFlag is the top bit of a serialized action, set for absorbs.
	absorbFlag uint32 = 1 << 31

	// MaxActionCount is the largest batch length that survives serialization,
	// the top bit being reserved for the direction.
	MaxActionCount uint32 = absorbFlag - 1
)

// Action is one entry of the sponge I/O log: a direction and the length of
// the batch requested by the caller.
type Action struct {
	Direction Direction
	Count     uint32
}

func AbsorbAction(count uint32) Action {
	return Action{Direction: Absorb, Count: count}
}

func SqueezeAction(count uint32) Action {
	return Action{Direction: Squeeze, Count: count}
}

// Serialize packs the action into a single word: the magnitude in the low 31
// bits and the direction in bit 31 (set for Absorb).
func (a Action) Serialize() uint32 {
	if a.Count > MaxActionCount {
		panic(fmt.Sprintf("action count %d does not fit in 31 bits", a.Count))
	}

	if a.Direction == Absorb {
		return absorbFlag | a.Count
	}
	return a.Count
}

// DeserializeAction recovers the action packed by Serialize.
func DeserializeAction(word uint32) Action {
	if word&absorbFlag != 0 {
		return AbsorbAction(word &^ absorbFlag)
	}
	return SqueezeAction(word)
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%d)", a.Direction, a.Count)
}

// SerializeActions serializes the actions in order.
func SerializeActions(actions []Action) []uint32 {
	words := make([]uint32, len(actions))
	for i, action := range actions {
		words[i] = action.Serialize()
	}
	return words
}
