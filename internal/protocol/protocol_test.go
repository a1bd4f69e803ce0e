package protocol

import (
	"encoding/json"
	"testing"

	"frontier.sim/internal/geometry"
)

func TestDecodeBaseRoutesByType(t *testing.T) {
	raw := []byte(`{"type":"EVENT","protocol_version":"1.0","event":{"kind":"SHUTDOWN"}}`)
	base, err := DecodeBase(raw)
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if base.Type != TypeEvent || base.ProtocolVersion != Version {
		t.Fatalf("base %+v", base)
	}
}

func TestEventMsgRoundTrip(t *testing.T) {
	position := geometry.Pos(4, 9)
	msg := EventMsg{
		Type:            TypeEvent,
		ProtocolVersion: Version,
		Event:           InputEvent{Kind: EventWorldPositionChanged, Position: &position},
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded EventMsg
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Event.Kind != EventWorldPositionChanged || *decoded.Event.Position != position {
		t.Fatalf("decoded %+v", decoded.Event)
	}
}

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode(ErrUnknownEvent) || !IsKnownCode("") {
		t.Errorf("known codes rejected")
	}
	if IsKnownCode("E_NOPE") {
		t.Errorf("unknown code accepted")
	}
}
