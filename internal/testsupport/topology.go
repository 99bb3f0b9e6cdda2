package testsupport

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FanInTopology describes a source -> distributor layer -> distributor
// layer -> sink pipeline shape, loaded from YAML so the conservation
// test's width and message count are fixture data rather than hard-coded
// loop bounds.
type FanInTopology struct {
	// MessageCount is how many distinct messages the source emits.
	MessageCount int `yaml:"message_count"`
	// FirstLayerWidth is the number of intermediate channels the
	// source fans out across.
	FirstLayerWidth int `yaml:"first_layer_width"`
	// FirstLayerWorkers is the number of goroutines draining the
	// first layer's channels into the second layer.
	FirstLayerWorkers int `yaml:"first_layer_workers"`
	// SecondLayerWorkers is the number of goroutines feeding the sink.
	SecondLayerWorkers int `yaml:"second_layer_workers"`
	// MessagePrefix is prepended to each message's numeric suffix.
	MessagePrefix string `yaml:"message_prefix"`
}

// DefaultFanInTopology matches the 1000-message, 12-distributor,
// 6-channel fan-in pipeline.
func DefaultFanInTopology() FanInTopology {
	return FanInTopology{
		MessageCount:       1000,
		FirstLayerWidth:    6,
		FirstLayerWorkers:  12,
		SecondLayerWorkers: 12,
		MessagePrefix:      "Hello_",
	}
}

// ParseFanInTopology decodes a topology fixture from YAML, filling any
// field the document omits with DefaultFanInTopology's value.
func ParseFanInTopology(doc []byte) (FanInTopology, error) {
	topo := DefaultFanInTopology()
	if len(doc) == 0 {
		return topo, nil
	}
	if err := yaml.Unmarshal(doc, &topo); err != nil {
		return FanInTopology{}, fmt.Errorf("testsupport: parsing fan-in topology: %w", err)
	}
	return topo, nil
}

// Messages returns the topology's input set: MessagePrefix concatenated
// with a zero-padded counter, e.g. "Hello_000".."Hello_999".
func (t FanInTopology) Messages() []string {
	width := len(fmt.Sprintf("%d", t.MessageCount-1))
	out := make([]string, t.MessageCount)
	for i := range out {
		out[i] = fmt.Sprintf("%s%0*d", t.MessagePrefix, width, i)
	}
	return out
}
