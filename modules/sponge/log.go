package sponge

import (
	"fmt"
	"strconv"
	"strings"
)

// Log is the append-only history of absorb/squeeze batches of a sponge.
// Consecutive batches of the same direction are kept apart here and only
// merged by Compress.
type Log struct {
	actions []Action
}

func (l *Log) Append(action Action) {
	l.actions = append(l.actions, action)
}

// Entries returns a copy of the recorded actions.
func (l *Log) Entries() []Action {
	entries := make([]Action, len(l.actions))
	copy(entries, l.actions)
	return entries
}

func (l *Log) Len() int {
	return len(l.actions)
}

// tailRun returns the length of the trailing run of actions going in the
// given direction, as it would appear after compression.
func (l *Log) tailRun(direction Direction) uint64 {
	var run uint64 = 0
	for i := len(l.actions) - 1; i >= 0; i-- {
		if l.actions[i].Direction != direction {
			break
		}
		run += uint64(l.actions[i].Count)
	}
	return run
}

// Compress merges consecutive actions of the same direction by summing their
// counts, giving the I/O pattern independent of how calls were batched.
func (l *Log) Compress() ([]Action, error) {
	return CompressActions(l.actions)
}

// CompressActions is the run-length compression behind Log.Compress.
func CompressActions(actions []Action) ([]Action, error) {
	compressed := make([]Action, 0, len(actions))

	for _, action := range actions {
		if len(compressed) == 0 {
			compressed = append(compressed, action)
			continue
		}

		last := &compressed[len(compressed)-1]
		if last.Direction != action.Direction {
			compressed = append(compressed, action)
			continue
		}

		merged := uint64(last.Count) + uint64(action.Count)
		if merged > uint64(MaxActionCount) {
			return nil, fmt.Errorf(
				"%w: merged %s run reaches %d", ErrCountOverflow, action.Direction, merged)
		}
		last.Count = uint32(merged)
	}

	return compressed, nil
}

// ParsePattern reads a comma separated pattern such as "A3,S2" into actions.
func ParsePattern(pattern string) ([]Action, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}

	var actions []Action
	for _, token := range strings.Split(pattern, ",") {
		token = strings.TrimSpace(token)
		if len(token) < 2 {
			return nil, fmt.Errorf("parse pattern: malformed op %q", token)
		}

		var direction Direction
		switch token[0] {
		case 'A', 'a':
			direction = Absorb
		case 'S', 's':
			direction = Squeeze
		default:
			return nil, fmt.Errorf("parse pattern: unknown op kind %q", token[:1])
		}

		count, err := strconv.ParseUint(token[1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse pattern: bad count in %q", token)
		}
		if count > uint64(MaxActionCount) {
			return nil, fmt.Errorf("%w: %q", ErrCountOverflow, token)
		}
		actions = append(actions, Action{Direction: direction, Count: uint32(count)})
	}

	return actions, nil
}

// FormatPattern is the inverse of ParsePattern.
func FormatPattern(actions []Action) string {
	tokens := make([]string, len(actions))
	for i, action := range actions {
		kind := "A"
		if action.Direction == Squeeze {
			kind = "S"
		}
		tokens[i] = fmt.Sprintf("%s%d", kind, action.Count)
	}
	return strings.Join(tokens, ",")
}
