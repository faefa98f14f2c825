package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// End implements flow.md §4.4.9: emit the message if present and
// terminate with the node's configured status.
func End(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.EndConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode end config: "+err.Error())
	}

	var message string
	if cfg.Message != nil {
		message = interp.Interpolate(*cfg.Message, req.Session.Variables)
	}

	status := flow.SessionStatus(cfg.Status)
	if status == "" {
		status = flow.StatusCompleted
	}

	var output interface{}
	if cfg.Summary != nil {
		output = map[string]interface{}{"summary": *cfg.Summary}
	}

	return flow.NodeResult{
		Message:        message,
		Output:         output,
		End:            true,
		TerminalStatus: status,
	}
}
