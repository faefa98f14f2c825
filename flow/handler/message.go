package handler

import (
	"time"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// Message implements flow.md §4.4.2: interpolate and emit the message,
// suspending for Delay first if configured. The engine follows the
// unique outgoing edge.
func Message(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.MessageConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode message config: "+err.Error())
	}

	if cfg.DelayMS > 0 {
		timer := time.NewTimer(time.Duration(cfg.DelayMS) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-req.Ctx.Done():
			return fatal(flow.ErrExecutionError, req.Ctx.Err().Error())
		}
	}

	return flow.NodeResult{Message: interp.Interpolate(cfg.Message, req.Session.Variables)}
}
