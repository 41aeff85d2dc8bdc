// Package dataset slices encoded token streams into the fixed-length
// context/target windows the trainer consumes, and groups windows into
// shuffled mini-batches.
package dataset

// ContextLen is the default context window length.
const ContextLen = 100

// Window pairs a fixed-length context of token ids with the single id that
// follows it in the stream.
type Window struct {
	Context []int
	Target  int
}

// MakeWindows slices a token-id stream into supervised training windows.
//
// For a stream of length N and context length L it emits exactly
// max(0, N-L) windows; the window at index i has context ids[i:i+L] and
// target ids[i+L]. Streams no longer than L produce an empty slice, not an
// error.
//
// Contexts are sub-slices of ids; callers must not mutate them.
func MakeWindows(ids []int, contextLen int) []Window {
	if contextLen <= 0 || len(ids) <= contextLen {
		return nil
	}

	windows := make([]Window, 0, len(ids)-contextLen)
	for i := 0; i+contextLen < len(ids); i++ {
		windows = append(windows, Window{
			Context: ids[i : i+contextLen : i+contextLen],
			Target:  ids[i+contextLen],
		})
	}
	return windows
}
