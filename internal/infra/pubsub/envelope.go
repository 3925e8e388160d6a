package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"campuseats/internal/domain/service"

	"github.com/pkg/errors"
)

// Attribute keys set on every published order event, whatever the transport.
const (
	AttrType      = "type"
	AttrOrderID   = "order_id"
	AttrRequestID = "request_id"
)

const localSubscription = "projects/local/subscriptions/kitchen-sub"

// eventAttributes returns the routing and tracing attributes of an event.
func eventAttributes(event *service.OrderEvent) map[string]string {
	attrs := map[string]string{
		AttrType:    event.Type,
		AttrOrderID: strconv.FormatInt(event.OrderID, 10),
	}
	if event.RequestID != "" {
		attrs[AttrRequestID] = event.RequestID
	}

	return attrs
}

// sortedAttributeKeys gives transports without a map type a stable header order.
func sortedAttributeKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// PushMessage is the message part of a Pub/Sub push delivery.
type PushMessage struct {
	Data        string            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
}

// PushEnvelope is the JSON body Pub/Sub POSTs to a push subscription. The
// local publisher produces the same shape so the worker has one decoder.
type PushEnvelope struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

// NewPushEnvelope wraps event the way a push subscription would deliver it.
func NewPushEnvelope(event *service.OrderEvent, subscription string, publishedAt time.Time) (*PushEnvelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attrs := eventAttributes(event)

	return &PushEnvelope{
		Message: PushMessage{
			Data:        base64.StdEncoding.EncodeToString(data),
			Attributes:  attrs,
			MessageID:   event.Type + "-" + attrs[AttrOrderID] + "-" + strconv.FormatInt(event.OccurredAt.UnixNano(), 10),
			PublishTime: publishedAt.UTC().Format(time.RFC3339),
		},
		Subscription: subscription,
	}, nil
}

// RequestID returns the request_id attribute, or "".
func (e *PushEnvelope) RequestID() string {
	return e.Message.Attributes[AttrRequestID]
}

// Event decodes the base64 JSON payload.
func (e *PushEnvelope) Event() (*service.OrderEvent, error) {
	raw, err := base64.StdEncoding.DecodeString(e.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, errors.Wrap(err, "parse order event")
	}

	return &event, nil
}
