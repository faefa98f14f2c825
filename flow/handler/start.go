package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// Start implements flow.md §4.4.1: emit the welcome message if present,
// merge initVariables into session variables, never wait for input. The
// engine follows the unique outgoing edge (NextNodeID left nil).
func Start(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.StartConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode start config: "+err.Error())
	}

	var result flow.NodeResult
	if cfg.WelcomeMessage != nil {
		result.Message = interp.Interpolate(*cfg.WelcomeMessage, req.Session.Variables)
	}
	if len(cfg.InitVariables) > 0 {
		result.Variables = cfg.InitVariables
	}
	return result
}
