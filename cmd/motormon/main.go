package main

import (
	"flag"
	"log"
	"os"
	"reflect"
	"strings"

	motorcmds "github.com/robotalks/motorctl/pkg/cli/cmds/motor"
	"github.com/robotalks/motorctl/pkg/l1/comm/mqtt"
	"github.com/robotalks/motorctl/pkg/l1/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/motor/"
	raw     bool
)

func init() {
	if val := os.Getenv("MOTOR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.BoolVar(&raw, "raw", raw, "Print messages without unit conversion.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+mqtt.TopicMeta) {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		if !raw {
			if out, ok := motorcmds.FormatStatus(msg); ok {
				log.Printf("%s: %s", topic, out)
				return
			}
		}
		log.Printf("%s: [%s] %s", topic,
			reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
			msg.(msgs.SerializableMessage).Serializable().String())
	}))
	<-(chan struct{})(nil)
}
