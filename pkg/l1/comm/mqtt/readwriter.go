package mqtt

import (
	"context"
	"io"

	"github.com/robotalks/motorctl/pkg/l1"
)

// ReadWriter implements PacketReadWriter on a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	done     chan struct{}
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{Queue: q, packetCh: make(chan []byte, 16), done: make(chan struct{})}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector sets topics for the supervisor side:
// it subscribes <type>/<id>/msg and publishes <type>/<id>/cmd.
func (p *ReadWriter) ForConnector(ref l1.BoardRef) *ReadWriter {
	return p.WithTopics(BoardTopic(ref, TopicMessage), BoardTopic(ref, TopicCommand))
}

// ForBoard sets topics for the board side:
// it subscribes <type>/<id>/cmd and publishes <type>/<id>/msg.
func (p *ReadWriter) ForBoard(ref l1.BoardRef) *ReadWriter {
	return p.WithTopics(BoardTopic(ref, TopicCommand), BoardTopic(ref, TopicMessage))
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	defer sub.Close()
	defer close(p.done)
	<-ctx.Done()
	return ctx.Err()
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.done:
	}
}
