package recovery

// Marker tracks an in-progress Start event so its rule can later call
// Finish. The original implementation pairs this with a drop-bomb that
// panics if a Marker is dropped unfinished; Go has no destructors to hook
// that into, so every start() call site pairs it with a Finish call.
// Finish records `finished`, but nothing checks it.
type Marker struct {
	startIdx uint32
	finished bool
	name     string
}

func newMarker(startIdx uint32, name string) *Marker {
	return &Marker{startIdx: startIdx, name: name}
}

// Finish completes the node this marker opened, extending its recorded
// range to cover everything consumed since it was started (the Start event
// itself only records the single token the cursor was at when start() was
// called).
func (m *Marker) Finish(p *Parser) {
	m.finished = true
	p.result[m.startIdx].Range.End = p.currentPos()
	p.finish()
}
