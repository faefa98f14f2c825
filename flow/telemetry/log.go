// Package telemetry provides ambient observability subscribers for
// flow/events.Bus: structured logging and OpenTelemetry tracing.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ivaflow/flowcore/flow/events"
)

// LogSubscriber writes one line per event to a writer, either as
// human-readable key=value text or as JSON Lines.
type LogSubscriber struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogSubscriber returns a LogSubscriber writing to w (os.Stdout if nil).
// jsonMode selects JSON Lines output over text.
func NewLogSubscriber(w io.Writer, jsonMode bool) *LogSubscriber {
	if w == nil {
		w = os.Stdout
	}
	return &LogSubscriber{writer: w, jsonMode: jsonMode}
}

// Subscribe returns an events.Subscriber bound to this LogSubscriber,
// ready to pass to Bus.Subscribe.
func (l *LogSubscriber) Subscribe() events.Subscriber {
	return l.emit
}

func (l *LogSubscriber) emit(ev events.Event) {
	if l.jsonMode {
		l.emitJSON(ev)
		return
	}
	l.emitText(ev)
}

func (l *LogSubscriber) emitJSON(ev events.Event) {
	data, err := json.Marshal(struct {
		Kind      events.Kind            `json:"kind"`
		SessionID string                 `json:"sessionId"`
		FlowID    string                 `json:"flowId,omitempty"`
		NodeID    string                 `json:"nodeId,omitempty"`
		Meta      map[string]interface{} `json:"meta,omitempty"`
	}{ev.Kind, ev.SessionID, ev.FlowID, ev.NodeID, ev.Meta})
	if err != nil {
		fmt.Fprintf(l.writer, "{\"error\":%q}\n", err.Error())
		return
	}
	fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogSubscriber) emitText(ev events.Event) {
	fmt.Fprintf(l.writer, "[%s] sessionId=%s nodeId=%s", ev.Kind, ev.SessionID, ev.NodeID)
	if len(ev.Meta) > 0 {
		if metaJSON, err := json.Marshal(ev.Meta); err == nil {
			fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		}
	}
	fmt.Fprint(l.writer, "\n")
}
