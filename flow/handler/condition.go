package handler

import (
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

// Condition implements flow.md §4.4.7: evaluate rules in declared order
// and route to the first match's target, falling back to defaultNodeId
// or the unique outgoing edge.
func Condition(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.ConditionConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode condition config: "+err.Error())
	}

	for _, rule := range cfg.Conditions {
		resolved, found := interp.Resolve(req.Session.Variables, rule.Variable)
		if interp.Compare(resolved, found, rule.Operator, rule.Value) {
			return flow.NodeResult{NextNodeID: flow.Goto(rule.TargetNodeID)}
		}
	}

	if cfg.DefaultNodeID != nil {
		return flow.NodeResult{NextNodeID: flow.Goto(*cfg.DefaultNodeID)}
	}
	return flow.NodeResult{}
}
