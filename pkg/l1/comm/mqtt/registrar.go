package mqtt

import (
	"context"
	"encoding/json"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l1"
	"github.com/robotalks/motorctl/pkg/l1/comm"
)

// Registrar implements l1.Registrar using MQTT. The board metadata is
// retained on <type>/<id>/meta while connected and cleared by the will.
type Registrar struct {
	Queue *Queue
	Info  l1.BoardInfo

	meta      []byte
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.BoardInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	metaTopic := BoardTopic(info.Ref, TopicMeta)
	opts.SetBinaryWill(topicPrefix+metaTopic, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("motor:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue: NewQueue(opts, topicPrefix),
		Info:  info,
		meta:  meta,
	}
	r.Queue.OnConnect = func(q *Queue) {
		q.PubWith(metaTopic, r.meta, 1, true)
	}
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForBoard(info.Ref))
	return r, nil
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.registrar)
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	<-ctx.Done()
	r.Queue.PubWith(BoardTopic(r.Info.Ref, TopicMeta), nil, 1, true).Wait()
	r.Queue.Close()
	return nil
}
