package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
)

// Connector implements l1.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	brokerURL string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	if _, _, err := ClientOptionsFromURL(brokerURL); err != nil {
		return nil, err
	}
	return &Connector{DiscoverTimeout: DefaultDiscoverTimeout, brokerURL: brokerURL}, nil
}

func (c *Connector) newQueue() *Queue {
	q, _ := NewQueueFromURL(c.brokerURL)
	return q
}

// Discover implements Connector by collecting retained metadata.
func (c *Connector) Discover(ctx context.Context) (res []l1.BoardInfo, err error) {
	q := c.newQueue()
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	defer q.Close()
	resCh := make(chan l1.BoardInfo, 16)
	q.Sub("+/+/"+TopicMeta, Handler(func(topic string, payload []byte) {
		ref, _, ok := ParseBoardTopic(topic)
		if !ok || len(payload) == 0 {
			return
		}
		info := l1.BoardInfo{Ref: ref}
		if err := json.Unmarshal(payload, &info.Meta); err != nil {
			glog.Warningf("%s: bad metadata: %v", topic, err)
		}
		select {
		case resCh <- info:
		case <-time.After(time.Second):
		}
	}))

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.BoardRef) (l1.BoardConn, error) {
	conn := &BoardConn{Queue: c.newQueue()}
	conn.Init(NewPacketReadWriter(conn.Queue).ForConnector(ref))
	token := conn.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// BoardConn implements l1.BoardConn using MQTT.
type BoardConn struct {
	comm.BoardConn
	Queue *Queue
}
