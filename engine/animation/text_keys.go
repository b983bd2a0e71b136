package animation

import "strings"

const (
	soundPrefix    = "sound: "
	soundGenPrefix = "soundgen: "
)

// handleTextKey dispatches the key at index key of layer idx. It returns false when the
// layer's consume loop must stop for this frame.
func (a *animation) handleTextKey(idx int, key int) bool {
	l := &a.layers[idx]
	time := l.keys[key].Time
	evt := l.keys[key].Label

	if id, ok := strings.CutPrefix(evt, soundPrefix); ok {
		if a.sounds != nil {
			a.sounds.PlaySound3D(a.entity, id, 1, 1)
		}
		return true
	}
	if strings.HasPrefix(evt, soundGenPrefix) {
		// TODO: resolve the cue through the actor's sound generator table once creature sound data is loaded
		return true
	}

	phase, ok := strings.CutPrefix(evt, l.group+": ")
	if !ok {
		// another group on the same timeline
		return true
	}

	switch phase {
	case "start", "loop start":
		l.loopStartKey = key
		return true
	case "loop stop", "stop":
		if l.looping {
			a.loop(idx)
			// a zero-length loop window would never consume the frame's time
			return l.time < time
		}
	}

	if a.marker != nil {
		a.marker.MarkerEvent(time, phase)
	}
	return true
}
