package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/nats-io/nats.go"
)

// IngestSubject is the default subject for graph ingestion.
const IngestSubject = "graph.ingest.entity"

// Publisher sends raw messages. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Connect dials a NATS server for publishing.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("caseschema"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return nc, nil
}

// PublishTriples groups the triples of the record recordID by subject and
// publishes one entity message per subject, in first-seen order. A nil
// publisher skips publishing. It returns the number of messages sent.
func PublishTriples(ctx context.Context, pub Publisher, subject, recordID string, triples []message.Triple) (int, error) {
	if pub == nil {
		return 0, nil
	}
	if subject == "" {
		subject = IngestSubject
	}

	var order []string
	bySubject := map[string][]message.Triple{}
	for _, t := range triples {
		if _, ok := bySubject[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	now := time.Now()
	sent := 0
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		payload := newEntityPayload(recordID, id, bySubject[id], now)
		if err := payload.Validate(); err != nil {
			return sent, err
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return sent, fmt.Errorf("marshal entity %s: %w", id, err)
		}
		if err := pub.Publish(subject, data); err != nil {
			return sent, fmt.Errorf("publish entity %s: %w", id, err)
		}
		sent++
	}
	return sent, nil
}

// PublishRecord converts a record and publishes its entities.
func (c *Converter) PublishRecord(ctx context.Context, pub Publisher, subject string, record any) (int, error) {
	obj, err := normalize(record)
	if err != nil {
		return 0, err
	}
	triples, err := c.FromRecord(obj)
	if err != nil {
		return 0, err
	}
	recordID, _ := obj["@id"].(string)
	return PublishTriples(ctx, pub, subject, recordID, triples)
}
