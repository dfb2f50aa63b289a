package pipeline

// Observer receives coarse progress milestones while a run executes. The
// callbacks are purely observational and never affect control flow. A failed
// run reports percent -1.
type Observer interface {
	Progress(status string, percent int)
}

// nopObserver is the default when no observer is attached.
type nopObserver struct{}

func (nopObserver) Progress(string, int) {}
