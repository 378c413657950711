package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"motion-dataset/utils"
)

// MQTTReader subscribes to a topic on which the device publishes its serial
// output, one or more lines per message.
type MQTTReader struct {
	*linePump
	cfg   utils.MQTTConfig
	lines chan string
}

func NewMQTTReader(cfg utils.MQTTConfig, label string, buf int) *MQTTReader {
	p := newLinePump("mqtt", label, buf)
	return &MQTTReader{
		linePump: p,
		cfg:      cfg,
		lines:    make(chan string, cap(p.out)),
	}
}

func (r *MQTTReader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("mqtt reader started    (broker=%s, topic=%s)", r.cfg.Broker, r.cfg.Topic)
}

func (r *MQTTReader) run(ctx context.Context) {
	defer close(r.out)

	opts := mqtt.NewClientOptions().
		AddBroker(r.cfg.Broker).
		SetClientID(r.cfg.ClientID).
		SetUsername(r.cfg.Username).
		SetPassword(r.cfg.Password).
		SetOrderMatters(true)
	client := mqtt.NewClient(opts)

	tok := client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		r.fail(fmt.Errorf("connect %s: timed out", r.cfg.Broker))
		return
	}
	if err := tok.Error(); err != nil {
		r.fail(fmt.Errorf("connect %s: %w", r.cfg.Broker, err))
		return
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		for _, line := range strings.Split(string(msg.Payload()), "\n") {
			select {
			case <-ctx.Done():
				return
			case r.lines <- line:
			}
		}
	}
	if tok := client.Subscribe(r.cfg.Topic, r.cfg.QoS, handler); tok.Wait() && tok.Error() != nil {
		r.fail(fmt.Errorf("subscribe %s: %w", r.cfg.Topic, tok.Error()))
		return
	}
	defer client.Unsubscribe(r.cfg.Topic)

	for {
		select {
		case <-ctx.Done():
			s := r.Stats()
			utils.L().Info("mqtt reader stopped    (accepted=%d, rejected=%d)", s.Accepted, s.Rejected)
			return
		case line := <-r.lines:
			if !r.feed(ctx, line) {
				return
			}
		}
	}
}
