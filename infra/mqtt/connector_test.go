package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/infra/logger"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	published map[string][][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{published: make(map[string][][]byte)}
}

func (c *fakeClient) IsConnected() bool        { return true }
func (c *fakeClient) Connect() paho.Token      { return &fakeToken{} }
func (c *fakeClient) Disconnect(quiesce uint)  {}
func (c *fakeClient) Subscribe(topic string, qos byte, cb paho.MessageHandler) paho.Token {
	return &fakeToken{}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.published[topic] = append(c.published[topic], payload.([]byte))
	return &fakeToken{}
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func testConnector(cli pahoClient) *Connector {
	cfg := Config{}
	cfg.SetDefaults()
	return &Connector{cli: cli, cfg: cfg, solver: dispatch.Planner{}, log: logger.NopLogger{}}
}

func TestConnectorSolvesRequest(t *testing.T) {
	cli := newFakeClient()
	c := testConnector(cli)

	req := `{
	  "load": 25,
	  "fuels": {"gas_price": 10, "kerosene_price": 50, "wind_percent": 50},
	  "powerplants": [
	    {"name": "gas", "type": "gasfired", "efficiency": 0.5, "pmin": 0, "pmax": 30},
	    {"name": "wind", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 20}
	  ]
	}`
	c.onRequest(nil, &fakeMessage{topic: c.cfg.RequestTopic, payload: []byte(req)})

	msgs := cli.published[c.cfg.ResponseTopic]
	if len(msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(msgs))
	}
	var resp response
	if err := json.Unmarshal(msgs[0], &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	var sum float64
	for _, a := range resp.Plan {
		sum += a.Power
	}
	if sum != 25 {
		t.Errorf("plan sums to %v, want 25", sum)
	}
}

func TestConnectorReportsInfeasible(t *testing.T) {
	cli := newFakeClient()
	c := testConnector(cli)

	req := `{
	  "load": 50,
	  "fuels": {"gas_price": 13.4, "kerosene_price": 50.8, "wind_percent": 60},
	  "powerplants": [{"name": "g", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460}]
	}`
	c.onRequest(nil, &fakeMessage{topic: c.cfg.RequestTopic, payload: []byte(req)})

	msgs := cli.published[c.cfg.ResponseTopic]
	if len(msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(msgs))
	}
	var resp response
	if err := json.Unmarshal(msgs[0], &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" || len(resp.Plan) != 0 {
		t.Fatalf("expected error response, got %+v", resp)
	}
}

func TestConnectorRejectsMalformedRequest(t *testing.T) {
	cli := newFakeClient()
	c := testConnector(cli)
	c.onRequest(nil, &fakeMessage{topic: c.cfg.RequestTopic, payload: []byte(`{"load":`)})

	msgs := cli.published[c.cfg.ResponseTopic]
	if len(msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(msgs))
	}
	var resp response
	if err := json.Unmarshal(msgs[0], &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected error for malformed payload")
	}
}
