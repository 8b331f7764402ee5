package graph

import (
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/caseschema/vocabulary/uco"
)

// EntityType is the message type for investigation entity payloads.
var EntityType = message.Type{Domain: "caseschema", Category: "investigation_entity", Version: "v1"}

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      EntityType.Domain,
		Category:    EntityType.Category,
		Version:     EntityType.Version,
		Description: "One entity of a CASE/UCO investigation record, with its class IRIs and triples",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityPayload carries the triples of one record entity (the investigation
// itself, an identity, an action, an evidence item) for graph ingestion.
type EntityPayload struct {
	ID string `json:"id"`
	// RecordID is the @id of the investigation record the entity came from.
	RecordID string `json:"record_id"`
	// Classes are the entity's @type values, expanded to IRIs where the
	// prefix is known.
	Classes    []string         `json:"classes,omitempty"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func newEntityPayload(recordID, id string, triples []message.Triple, now time.Time) *EntityPayload {
	p := &EntityPayload{ID: id, RecordID: recordID, TripleData: triples, UpdatedAt: now}
	for _, t := range triples {
		if t.Predicate != uco.RDFType {
			continue
		}
		if class, ok := t.Object.(string); ok {
			p.Classes = append(p.Classes, uco.ExpandCURIE(class))
		}
	}
	return p
}

func (e *EntityPayload) EntityID() string          { return e.ID }
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

// IsRecordRoot reports whether the entity is the investigation record itself.
func (e *EntityPayload) IsRecordRoot() bool { return e.ID == e.RecordID }

func (e *EntityPayload) Validate() error {
	if e.ID == "" {
		return errors.New("entity ID is required")
	}
	if e.RecordID == "" {
		return fmt.Errorf("entity %s: record ID is required", e.ID)
	}
	if len(e.TripleData) == 0 {
		return fmt.Errorf("entity %s: no triples", e.ID)
	}
	for _, t := range e.TripleData {
		if t.Subject != e.ID {
			return fmt.Errorf("entity %s: triple subject %s belongs to another entity", e.ID, t.Subject)
		}
	}
	return nil
}
