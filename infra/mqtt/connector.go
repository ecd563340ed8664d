package mqtt

import (
	"encoding/json"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled       bool   `json:"enabled"`
	Broker        string `json:"broker"`
	ClientID      string `json:"client_id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	RequestTopic  string `json:"request_topic"`
	ResponseTopic string `json:"response_topic"`
	QoS           byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "powerplan"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "powerplan/requests"
	}
	if c.ResponseTopic == "" {
		c.ResponseTopic = "powerplan/plans"
	}
}

// Solver is the subset of dispatch.Manager used by the connector.
type Solver interface {
	Solve(model.Payload) (dispatch.Plan, error)
}

// pahoClient narrows the Paho client so it can be faked in tests.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// response is the document published for every request. Either Plan or Error
// is set, never both.
type response struct {
	Plan  []model.Assignment `json:"plan,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Connector serves production-plan requests over MQTT: payloads received on
// the request topic are solved and the resulting plan is published on the
// response topic.
type Connector struct {
	cli    pahoClient
	cfg    Config
	solver Solver
	log    logger.Logger
}

// NewConnector connects to the broker and subscribes to the request topic.
func NewConnector(cfg Config, solver Solver, log logger.Logger) (*Connector, error) {
	cfg.SetDefaults()
	c := &Connector{cfg: cfg, solver: solver, log: log}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(cli paho.Client) {
		log.Infof("MQTT connected")
		if token := cli.Subscribe(cfg.RequestTopic, cfg.QoS, c.onRequest); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	c.cli = cli
	return c, nil
}

func (c *Connector) onRequest(cli paho.Client, msg paho.Message) {
	var payload model.Payload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		c.log.Errorf("malformed request on %s: %v", msg.Topic(), err)
		c.publish(response{Error: "malformed payload: " + err.Error()})
		return
	}
	plan, err := c.solver.Solve(payload)
	if err != nil {
		c.publish(response{Error: err.Error()})
		return
	}
	c.publish(response{Plan: plan.Assignments})
}

func (c *Connector) publish(resp response) {
	b, err := json.Marshal(resp)
	if err != nil {
		c.log.Errorf("marshal response: %v", err)
		return
	}
	if token := c.cli.Publish(c.cfg.ResponseTopic, c.cfg.QoS, false, b); token.Wait() && token.Error() != nil {
		c.log.Errorf("publish error: %v", token.Error())
	}
}

// Close disconnects from the broker.
func (c *Connector) Close() {
	if c.cli != nil && c.cli.IsConnected() {
		c.cli.Disconnect(250)
	}
}
