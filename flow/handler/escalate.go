package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// Escalate implements flow.md §4.4.8: emit the handoff message if set,
// record the full escalation context, and terminate the session as
// escalated. The engine is responsible for additionally emitting
// session_escalated (handlers never touch the event bus directly).
func Escalate(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.EscalateConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode escalate config: "+err.Error())
	}

	var message string
	if cfg.HandoffMessage != nil {
		message = interp.Interpolate(*cfg.HandoffMessage, req.Session.Variables)
	}

	context := make(map[string]interface{}, len(cfg.Context))
	for k, v := range cfg.Context {
		if s, ok := v.(string); ok {
			context[k] = interp.Interpolate(s, req.Session.Variables)
		} else {
			context[k] = v
		}
	}

	return flow.NodeResult{
		Message: message,
		Output: map[string]interface{}{
			"reason":   cfg.Reason,
			"queue":    derefString(cfg.Queue),
			"priority": derefString(cfg.Priority),
			"context":  context,
		},
		End:            true,
		TerminalStatus: flow.StatusEscalated,
	}
}
