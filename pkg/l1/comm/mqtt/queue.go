package mqtt

import (
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// ConnectHandler is to handle connect/disconnect events.
type ConnectHandler func(*Queue)

// Queue multiplexes handlers over one MQTT client. Topics are relative
// to TopicPrefix; each distinct filter is subscribed on the broker once.
type Queue struct {
	Client       paho.Client
	TopicPrefix  string
	OnConnect    ConnectHandler
	OnDisconnect ConnectHandler

	lock    sync.RWMutex
	filters map[string][]*Subscription
}

// Subscription is a subscribed filter.
type Subscription struct {
	Token paho.Token

	queue   *Queue
	filter  string
	handler Handler
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, filters: make(map[string][]*Subscription)}
	options.SetOnConnectHandler(q.OnConnectHandler)
	options.SetConnectionLostHandler(q.ConnectionLostHandler)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub subscribes a topic filter.
func (q *Queue) Sub(filter string, handler Handler) *Subscription {
	sub := &Subscription{queue: q, filter: filter, handler: handler}
	q.lock.Lock()
	subs := q.filters[filter]
	q.filters[filter] = append(subs, sub)
	q.lock.Unlock()

	if len(subs) == 0 {
		glog.V(2).Infof("SUB %q", q.TopicPrefix+filter)
		sub.Token = q.Client.Subscribe(q.TopicPrefix+filter, 0, q.dispatch)
	} else {
		sub.Token = &paho.DummyToken{}
	}
	return sub
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe subscribes all filters again, used after reconnecting.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.lock.RLock()
	for filter := range q.filters {
		filters[q.TopicPrefix+filter] = 0
	}
	q.lock.RUnlock()
	if len(filters) == 0 {
		return &paho.DummyToken{}
	}
	glog.V(2).Infof("SUB %d filters", len(filters))
	return q.Client.SubscribeMultiple(filters, q.dispatch)
}

// OnConnectHandler is the default implementation of paho.OnConnectHandler.
func (q *Queue) OnConnectHandler(paho.Client) {
	glog.Info("MQTT connected")
	q.Resubscribe()
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

// ConnectionLostHandler is the default implementation of paho.ConnectLostHandler.
func (q *Queue) ConnectionLostHandler(c paho.Client, err error) {
	glog.Warningf("MQTT connection lost: %v", err)
	if h := q.OnDisconnect; h != nil {
		h(q)
	}
}

func (q *Queue) handlersFor(topic string) (handlers []Handler) {
	q.lock.RLock()
	defer q.lock.RUnlock()
	for filter, subs := range q.filters {
		if filter != topic && (!IsWildcard(filter) || !MatchTopic(topic, filter)) {
			continue
		}
		for _, sub := range subs {
			handlers = append(handlers, sub.handler)
		}
	}
	return
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if len(topic) < len(q.TopicPrefix) || topic[:len(q.TopicPrefix)] != q.TopicPrefix {
		return
	}
	topic = topic[len(q.TopicPrefix):]
	glog.V(3).Infof("RCV %q", topic)
	payload := msg.Payload()
	for _, h := range q.handlersFor(topic) {
		h(topic, payload)
	}
}

// Close unsubscribes the handler. The filter is unsubscribed on the
// broker with its last handler.
func (s *Subscription) Close() error {
	q := s.queue
	q.lock.Lock()
	subs := q.filters[s.filter]
	for n, sub := range subs {
		if sub == s {
			subs = append(subs[:n:n], subs[n+1:]...)
			break
		}
	}
	last := len(subs) == 0
	if last {
		delete(q.filters, s.filter)
	} else {
		q.filters[s.filter] = subs
	}
	q.lock.Unlock()
	if !last {
		return nil
	}
	glog.V(2).Infof("UNSUB %q", s.filter)
	token := q.Client.Unsubscribe(q.TopicPrefix + s.filter)
	token.Wait()
	return token.Error()
}
