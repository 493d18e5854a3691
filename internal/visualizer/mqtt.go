package visualizer

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSink publishes each rendered pose as retained JSON, so late
// subscribers (console, web dashboard) immediately get the latest pose.
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

// NewMQTTSink connects to the broker and returns a sink publishing to
// topic.
func NewMQTTSink(broker, clientID, topic string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	log.Printf("mqtt sink: connected to broker at %s", broker)

	return &MQTTSink{client: client, topic: topic}, nil
}

func (s *MQTTSink) Render(pose RenderPose) error {
	if !pose.Live {
		return nil
	}

	payload, err := json.Marshal(pose)
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, 0, true, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
