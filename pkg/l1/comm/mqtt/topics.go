package mqtt

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/motorctl/pkg/l1"
)

// Topic suffixes under <type>/<id>/.
const (
	TopicMeta    = "meta"
	TopicCommand = "cmd"
	TopicMessage = "msg"
)

// BoardTopic returns the topic of a board, relative to the prefix.
func BoardTopic(ref l1.BoardRef, suffix string) string {
	return ref.Name() + "/" + suffix
}

// ParseBoardTopic extracts the board reference and suffix.
func ParseBoardTopic(topic string) (ref l1.BoardRef, suffix string, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[0] == "" || items[1] == "" {
		return
	}
	return l1.BoardRef{Type: items[0], ID: items[1]}, items[2], true
}

// IsWildcard tells whether a topic filter contains wildcards.
func IsWildcard(filter string) bool {
	return strings.Contains(filter, "+") || strings.HasSuffix(filter, "#")
}

// MatchTopic matches topic with a filter.
func MatchTopic(topic, filter string) bool {
	tokensT, tokensF := strings.Split(topic, "/"), strings.Split(filter, "/")
	for i, token := range tokensF {
		if token == "#" && i+1 == len(tokensF) {
			return true
		}
		if i >= len(tokensT) {
			return false
		}
		if token != "+" && token != tokensT[i] {
			return false
		}
	}
	return len(tokensT) == len(tokensF)
}

// ClientOptionsFromURL creates ClientOptions from URL:
//
//	mqtt://[user[:password]@]host:port/topic-prefix/?client-id=ID
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, strings.TrimPrefix(u.Path, "/"), nil
}
