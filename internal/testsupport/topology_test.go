package testsupport

import (
	"os"
	"testing"
)

func TestParseFanInTopology_Empty(t *testing.T) {
	topo, err := ParseFanInTopology(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topo != DefaultFanInTopology() {
		t.Errorf("expected default topology, got %+v", topo)
	}
}

func TestParseFanInTopology_Overrides(t *testing.T) {
	doc := []byte("message_count: 10\nfirst_layer_width: 2\n")
	topo, err := ParseFanInTopology(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topo.MessageCount != 10 {
		t.Errorf("expected message_count 10, got %d", topo.MessageCount)
	}
	if topo.FirstLayerWidth != 2 {
		t.Errorf("expected first_layer_width 2, got %d", topo.FirstLayerWidth)
	}
	if topo.FirstLayerWorkers != DefaultFanInTopology().FirstLayerWorkers {
		t.Errorf("expected first_layer_workers to keep its default, got %d", topo.FirstLayerWorkers)
	}
}

func TestParseFanInTopology_Fixture(t *testing.T) {
	doc, err := os.ReadFile("testdata/fanin.yaml")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	topo, err := ParseFanInTopology(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topo.MessageCount != 1000 {
		t.Errorf("expected message_count 1000, got %d", topo.MessageCount)
	}
	if len(topo.Messages()) != 1000 {
		t.Errorf("expected 1000 messages, got %d", len(topo.Messages()))
	}
}

func TestFanInTopology_MessagesZeroPadded(t *testing.T) {
	topo := FanInTopology{MessageCount: 1000, MessagePrefix: "Hello_"}
	msgs := topo.Messages()
	if msgs[0] != "Hello_000" {
		t.Errorf("expected Hello_000, got %s", msgs[0])
	}
	if msgs[999] != "Hello_999" {
		t.Errorf("expected Hello_999, got %s", msgs[999])
	}
}
