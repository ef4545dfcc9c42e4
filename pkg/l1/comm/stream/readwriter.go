// Package stream frames packets on byte streams such as serial ports
// and TCP connections.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxPacketSize bounds the length prefix so a corrupted stream fails
// instead of allocating.
const MaxPacketSize = 64 * 1024

// ReadWriter implements PacketReadWriter.
// Each packet is prefixed by its length in 4 bytes, little-endian.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(p.ReadWriter, prefix[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(prefix[:])
	if size > MaxPacketSize {
		return nil, fmt.Errorf("packet size %d exceeds %d", size, MaxPacketSize)
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(p.ReadWriter, pkt)
	return pkt, err
}

// WritePacket implements PacketWriter. Prefix and payload go out in
// one write.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	if len(pkt) > MaxPacketSize {
		return fmt.Errorf("packet size %d exceeds %d", len(pkt), MaxPacketSize)
	}
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	_, err := p.Write(buf)
	return err
}

// Close closes the underlying stream if it is an io.Closer.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
