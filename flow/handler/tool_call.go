package handler

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
	"github.com/ivaflow/flowcore/flow/service"
)

// ToolCall implements flow.md §4.4.6: interpolate inputs, invoke
// ToolService.Execute, and apply the onError policy on failure.
func ToolCall(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.ToolCallConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode tool_call config: "+err.Error())
	}

	if req.Services.Tool == nil {
		return fatal(flow.ErrExecutionError, "tool_call: no ToolService configured")
	}

	inputs := make(map[string]interface{}, len(cfg.Inputs))
	for k, v := range cfg.Inputs {
		if s, ok := v.(string); ok {
			inputs[k] = interp.Interpolate(s, req.Session.Variables)
		} else {
			inputs[k] = v
		}
	}

	timeout := toolTimeoutMS(cfg, req.DefaultToolTimeoutMS)

	result, callErr := req.Services.Tool.Execute(req.Ctx, cfg.ToolID, inputs, timeout)
	if callErr == nil && result.Success {
		return flow.NodeResult{Variables: map[string]interface{}{cfg.ResultVariable: result.Output}}
	}

	retried := false
	if cfg.OnError != nil && cfg.OnError.Action == "retry" {
		retried = true
		result, callErr = retryOnce(req, cfg, inputs, timeout)
		if callErr == nil && result.Success {
			return flow.NodeResult{
				Variables: map[string]interface{}{cfg.ResultVariable: result.Output},
				Retried:   true,
			}
		}
	}

	errMessage := toolErrorMessage(result, callErr)

	if cfg.OnError == nil {
		return fatal(flow.ErrToolCallFailed, errMessage)
	}

	switch cfg.OnError.Action {
	case "continue", "retry":
		return flow.NodeResult{
			Variables: map[string]interface{}{
				cfg.ResultVariable: map[string]interface{}{"error": errMessage, "success": false},
			},
			Retried: retried,
		}
	case "goto":
		if cfg.OnError.TargetNodeID == nil {
			return fatal(flow.ErrToolCallFailed, errMessage)
		}
		return flow.NodeResult{NextNodeID: flow.Goto(*cfg.OnError.TargetNodeID), Retried: retried}
	case "escalate":
		return flow.NodeResult{Output: map[string]interface{}{"error": errMessage}, Retried: retried}
	default:
		return fatal(flow.ErrToolCallFailed, errMessage)
	}
}

func toolTimeoutMS(cfg *flow.ToolCallConfig, defaultMS int) *int {
	if cfg.TimeoutSeconds == nil {
		if defaultMS <= 0 {
			return nil
		}
		return &defaultMS
	}
	ms := *cfg.TimeoutSeconds * 1000
	return &ms
}

func toolErrorMessage(result service.ExecuteResult, callErr error) string {
	if callErr != nil {
		return callErr.Error()
	}
	if result.Error != "" {
		return result.Error
	}
	return "tool call failed"
}

// retryOnce performs exactly one additional attempt honouring
// cfg.Retry.BackoffMS (flow.md §4.4.6's "minimum conformance" for the
// reserved onError.action="retry"): wait one backoff interval, then call
// Execute exactly once more.
func retryOnce(req Request, cfg *flow.ToolCallConfig, inputs map[string]interface{}, timeout *int) (service.ExecuteResult, error) {
	backoffMS := 0
	if cfg.Retry != nil {
		backoffMS = cfg.Retry.BackoffMS
	}

	b := backoff.NewConstantBackOff(time.Duration(backoffMS) * time.Millisecond)
	wait := b.NextBackOff()
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-req.Ctx.Done():
			return service.ExecuteResult{}, req.Ctx.Err()
		}
	}

	result, err := req.Services.Tool.Execute(req.Ctx, cfg.ToolID, inputs, timeout)
	if err == nil && !result.Success {
		err = errors.New(toolErrorMessage(result, nil))
	}
	return result, err
}
