// events.go - Publishes attendance check-ins and check-outs to an MQTT broker

package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Event kinds, used as the last topic segment.
const (
	CheckIn  = "checkin"
	CheckOut = "checkout"
)

// Event is the JSON payload sent for each attendance toggle.
type Event struct {
	Kind     string `json:"kind"`
	RecordID uint   `json:"record_id"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Date     string `json:"date"`
	At       string `json:"at"`
}

// Publisher delivers attendance events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ev Event) error
	Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) error { return nil }
func (NopPublisher) Close()              {}

// MQTTPublisher publishes events to <prefix>/<kind> with QoS 1.
type MQTTPublisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// Connect dials broker and returns a publisher for topics under prefix.
func Connect(broker, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("events: connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("events: connect to %s: %w", broker, err)
	}
	return &MQTTPublisher{client: client, prefix: prefix, timeout: 5 * time.Second}, nil
}

func (p *MQTTPublisher) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	topic := Topic(p.prefix, ev.Kind)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("events: publish to %s timed out", topic)
	}
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// Topic joins prefix and kind, ignoring surrounding slashes on prefix.
func Topic(prefix, kind string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return kind
	}
	return prefix + "/" + kind
}
