package comm

import (
	"io"
	"sync"
)

// MemoryReadWriter is one end of an in-process packet link.
type MemoryReadWriter struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// NewMemoryPair creates two connected ends. Closing either end closes both.
func NewMemoryPair(depth int) (*MemoryReadWriter, *MemoryReadWriter) {
	a2b, b2a := make(chan []byte, depth), make(chan []byte, depth)
	done, once := make(chan struct{}), &sync.Once{}
	return &MemoryReadWriter{in: b2a, out: a2b, done: done, once: once},
		&MemoryReadWriter{in: a2b, out: b2a, done: done, once: once}
}

// ReadPacket implements PacketReader.
func (m *MemoryReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-m.in:
		return pkt, nil
	case <-m.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (m *MemoryReadWriter) WritePacket(pkt []byte) error {
	buf := append([]byte(nil), pkt...)
	select {
	case m.out <- buf:
		return nil
	case <-m.done:
		return io.ErrClosedPipe
	}
}

// Close implements io.Closer.
func (m *MemoryReadWriter) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}
