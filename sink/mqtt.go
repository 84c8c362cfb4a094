// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/geoffholden/dhtwx/data"
	jww "github.com/spf13/jwalterweatherman"
)

const DefaultTopic = "/dhtwx/loop"

// Publisher is the part of MQTT.Client the sink uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) MQTT.Token
}

// MQTTSink publishes every record as JSON to a topic.
type MQTTSink struct {
	client  Publisher
	topic   string
	timeout time.Duration
	log     *jww.Notepad
}

func NewMQTT(client Publisher, topic string, log *jww.Notepad) *MQTTSink {
	if topic == "" {
		topic = DefaultTopic
	}
	return &MQTTSink{client: client, topic: topic, timeout: 10 * time.Second, log: quiet(log)}
}

func (m *MQTTSink) Emit(record data.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("publish to %s: timed out after %v", m.topic, m.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", m.topic, err)
	}
	m.log.DEBUG.Printf("Publishing %s -> %s", m.topic, payload)
	return nil
}

// DialMQTT connects to broker, retrying with a doubling delay capped at
// five minutes until it succeeds or ctx is done.
func DialMQTT(ctx context.Context, broker, clientID string, log *jww.Notepad) (MQTT.Client, error) {
	log = quiet(log)
	opts := MQTT.NewClientOptions().AddBroker(broker).SetClientID(clientID).SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(c MQTT.Client, err error) {
		log.ERROR.Println("MQTT Connection Lost", err)
	})
	client := MQTT.NewClient(opts)

	delay := time.Second
	for {
		token := client.Connect()
		if token.Wait() && token.Error() == nil {
			log.INFO.Println("Connected to", broker)
			return client, nil
		}
		log.ERROR.Println(token.Error())
		log.ERROR.Printf("Waiting %d seconds before reconnecting...", delay/time.Second)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = backoff(delay)
	}
}

func backoff(delay time.Duration) time.Duration {
	delay *= 2
	if delay > 5*time.Minute {
		delay = 5 * time.Minute
	}
	return delay
}
