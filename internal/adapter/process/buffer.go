package process

// tailBuffer keeps the last limit bytes written to it. The verdict marker and
// the final traceback line are at the end of the stream, so the head is what
// gets dropped. Write never reports a short write so os/exec keeps draining.
type tailBuffer struct {
	buf       []byte
	limit     int
	truncated bool
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if len(b.buf) > 2*b.limit {
		b.compact()
	}
	return len(p), nil
}

func (b *tailBuffer) compact() {
	if len(b.buf) <= b.limit {
		return
	}
	n := copy(b.buf, b.buf[len(b.buf)-b.limit:])
	b.buf = b.buf[:n]
	b.truncated = true
}

func (b *tailBuffer) String() string {
	b.compact()
	return string(b.buf)
}

func (b *tailBuffer) Truncated() bool {
	b.compact()
	return b.truncated
}
