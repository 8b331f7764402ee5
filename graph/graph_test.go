package graph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

func sample(t *testing.T, typ investigation.Type) samples.Record {
	t.Helper()
	recs, err := samples.NewGenerator().Generate(typ, 1)
	require.NoError(t, err)
	return recs[0]
}

func TestStoreMatch(t *testing.T) {
	s := NewStore()
	s.Add(
		message.Triple{Subject: "a", Predicate: uco.CoreName, Object: "Alpha"},
		message.Triple{Subject: "a", Predicate: uco.RDFType, Object: "Investigation"},
		message.Triple{Subject: "b", Predicate: uco.CoreName, Object: "Beta"},
	)

	assert.Len(t, s.Match("a", "", nil), 2)
	assert.Len(t, s.Match("", uco.CoreName, nil), 2)
	assert.Len(t, s.Match("", "", "Beta"), 1)
	assert.Equal(t, []any{"Alpha"}, s.Objects("a", uco.CoreName))
	assert.Equal(t, []string{"a"}, s.Subjects(uco.RDFType, "Investigation"))
	assert.True(t, s.HasSubject("b"))
	assert.False(t, s.HasSubject("c"))
	assert.Equal(t, 3, s.Len())
}

func TestFromRecordTriples(t *testing.T) {
	rec := sample(t, investigation.CyberIntrusion)
	id := rec.ID()

	s := NewStore()
	got, err := NewConverter().LoadRecord(s, rec)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	assert.Equal(t, []any{"Investigation"}, s.Objects(id, uco.RDFType))
	assert.Equal(t, []any{"APT29 Intrusion Investigation"}, s.Objects(id, uco.CoreName))
	assert.Len(t, s.Objects(id, uco.CoreObjectCreatedTime), 1)

	creators := s.Objects(id, uco.CoreCreatedBy)
	require.Len(t, creators, 1)
	creator := creators[0].(string)
	assert.Equal(t, []any{"core:IdentityAbstraction"}, s.Objects(creator, uco.RDFType))

	actions := s.Objects(id, uco.InvestigativeAction)
	require.Len(t, actions, 1)
	action := actions[0].(string)
	assert.Equal(t, []any{"Completed"}, s.Objects(action, uco.InvestigationStatus))
	assert.Len(t, s.Objects(action, uco.InvestigationStartTime), 1)
	assert.Len(t, s.Objects(action, uco.InvestigationEndTime), 1)

	for _, tr := range s.Triples() {
		assert.Equal(t, Source, tr.Source)
		assert.Equal(t, 1.0, tr.Confidence)
		assert.NotEqual(t, "@context", tr.Predicate)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, typ := range investigation.AllTypes() {
		t.Run(string(typ), func(t *testing.T) {
			rec := sample(t, typ)
			s := NewStore()
			id, err := NewConverter().LoadRecord(s, rec)
			require.NoError(t, err)

			back, err := ToRecord(s, id)
			require.NoError(t, err)

			want, err := json.Marshal(rec)
			require.NoError(t, err)
			got, err := json.Marshal(back)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestExtensionFields(t *testing.T) {
	rec := map[string]any{"@id": "x", "customNote": "kept", "tags": []any{"a", "b"}}
	s := NewStore()
	_, err := NewConverter().LoadRecord(s, rec)
	require.NoError(t, err)

	assert.Equal(t, []any{"kept"}, s.Objects("x", "case.extension.customNote"))

	back, err := ToRecord(s, "x")
	require.NoError(t, err)
	assert.Equal(t, "kept", back["customNote"])
	assert.Equal(t, []any{"a", "b"}, back["tags"])
}

func TestMissingID(t *testing.T) {
	_, err := NewConverter().FromRecord(map[string]any{"name": "no id"})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = NewConverter().FromRecord(map[string]any{
		"@id":       "x",
		"createdBy": map[string]any{"name": "anonymous"},
	})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = ToRecord(NewStore(), "nope")
	assert.Error(t, err)
}

type recordingPublisher struct {
	subjects []string
	messages []EntityPayload
	fail     bool
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.fail {
		return errors.New("broker down")
	}
	var msg EntityPayload
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	p.subjects = append(p.subjects, subject)
	p.messages = append(p.messages, msg)
	return nil
}

func TestPublishRecord(t *testing.T) {
	rec := sample(t, investigation.Murder)
	pub := &recordingPublisher{}

	n, err := NewConverter().PublishRecord(context.Background(), pub, "", rec)
	require.NoError(t, err)

	// investigation, creator, action, evidence
	assert.Equal(t, 4, n)
	require.Len(t, pub.messages, 4)
	for _, s := range pub.subjects {
		assert.Equal(t, IngestSubject, s)
	}

	ids := map[string]bool{}
	for _, m := range pub.messages {
		ids[m.EntityID()] = true
		assert.NotEmpty(t, m.Triples())
		assert.Equal(t, EntityType, m.Schema())
		assert.Equal(t, rec.ID(), m.RecordID)
		assert.NotEmpty(t, m.Classes)
	}
	assert.True(t, ids[rec.ID()])
	assert.True(t, pub.messages[0].IsRecordRoot())
	assert.Equal(t, []string{"Investigation"}, pub.messages[0].Classes)
}

func TestPublishNilPublisher(t *testing.T) {
	n, err := NewConverter().PublishRecord(context.Background(), nil, "", sample(t, investigation.Murder))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPublishErrors(t *testing.T) {
	_, err := NewConverter().PublishRecord(context.Background(), &recordingPublisher{fail: true}, "x", sample(t, investigation.Murder))
	assert.ErrorContains(t, err, "broker down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewConverter().PublishRecord(ctx, &recordingPublisher{}, "x", sample(t, investigation.Murder))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntityPayloadValidate(t *testing.T) {
	name := message.Triple{Subject: "x", Predicate: uco.CoreName, Object: "n"}

	assert.Error(t, (&EntityPayload{}).Validate())
	assert.Error(t, (&EntityPayload{ID: "x", RecordID: "r"}).Validate())
	assert.Error(t, (&EntityPayload{ID: "x", TripleData: []message.Triple{name}}).Validate())
	assert.Error(t, (&EntityPayload{
		ID:         "x",
		RecordID:   "r",
		TripleData: []message.Triple{{Subject: "y", Predicate: uco.CoreName, Object: "n"}},
	}).Validate())
	assert.NoError(t, (&EntityPayload{ID: "x", RecordID: "r", TripleData: []message.Triple{name}}).Validate())
}

func TestEntityPayloadClasses(t *testing.T) {
	p := newEntityPayload("rec", "ident", []message.Triple{
		{Subject: "ident", Predicate: uco.RDFType, Object: "core:IdentityAbstraction"},
		{Subject: "ident", Predicate: uco.CoreName, Object: "Det. Smith"},
	}, time.Now())

	assert.Equal(t, []string{uco.ClassIdentityAbstraction}, p.Classes)
	assert.False(t, p.IsRecordRoot())
	assert.NoError(t, p.Validate())
}

func TestStoreAddIsIdempotent(t *testing.T) {
	s := NewStore()
	tr := message.Triple{Subject: "a", Predicate: uco.CoreName, Object: "Alpha", Source: "first"}
	s.Add(tr, tr)
	s.Add(message.Triple{Subject: "a", Predicate: uco.CoreName, Object: "Alpha", Source: "second"})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Triples()[0].Source)

	s.Add(message.Triple{Subject: "a", Predicate: uco.CoreName, Object: "Beta"})
	assert.Equal(t, 2, s.Len())
}

func sharedCreatorRecord() map[string]any {
	creator := map[string]any{
		"@id":   "identity-1",
		"@type": "core:IdentityAbstraction",
		"name":  "Det. Smith",
	}
	return map[string]any{
		"@id":       "investigation-1",
		"@type":     "Investigation",
		"name":      "Shared creator",
		"createdBy": creator,
		"investigativeActions": []any{map[string]any{
			"@id":       "action-1",
			"@type":     "investigation:InvestigativeAction",
			"status":    "Completed",
			"createdBy": creator,
		}},
	}
}

func TestRoundTripSharedEntity(t *testing.T) {
	rec := sharedCreatorRecord()

	triples, err := NewConverter().FromRecord(rec)
	require.NoError(t, err)
	names := 0
	for _, tr := range triples {
		if tr.Subject == "identity-1" && tr.Predicate == uco.CoreName {
			names++
		}
	}
	assert.Equal(t, 1, names)

	s := NewStore()
	id, err := NewConverter().LoadRecord(s, rec)
	require.NoError(t, err)
	// Loading the same record again adds nothing.
	_, err = NewConverter().LoadRecord(s, rec)
	require.NoError(t, err)
	assert.Equal(t, []any{"Det. Smith"}, s.Objects("identity-1", uco.CoreName))

	back, err := ToRecord(s, id)
	require.NoError(t, err)
	creator, ok := back["createdBy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Det. Smith", creator["name"])

	actions, ok := back["investigativeActions"].([]any)
	require.True(t, ok)
	require.Len(t, actions, 1)
	actionCreator, ok := actions[0].(map[string]any)["createdBy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Det. Smith", actionCreator["name"])
}

func TestPublishSharedEntityOnce(t *testing.T) {
	pub := &recordingPublisher{}
	n, err := NewConverter().PublishRecord(context.Background(), pub, "", sharedCreatorRecord())
	require.NoError(t, err)

	// investigation, identity, action
	assert.Equal(t, 3, n)
	for _, m := range pub.messages {
		assert.Equal(t, "investigation-1", m.RecordID)
		if m.EntityID() == "identity-1" {
			assert.Len(t, m.Triples(), 2)
		}
	}
}
