package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/events"
	"github.com/ivaflow/flowcore/flow/executor"
	"github.com/ivaflow/flowcore/flow/handler"
)

// runLoop implements flow.md §4.6 steps 1-11. input, when non-nil, is
// delivered to the first handler invocation only (processInput's
// single-consumption rule); every subsequent iteration passes nil.
// The session's final state is persisted exactly once, on exit.
func (e *Engine) runLoop(ctx context.Context, sess *flow.Session, input *string) {
	steps := 0
	for {
		if steps >= e.opts.MaxSteps {
			sess.Status = flow.StatusError
			e.emit(events.KindNodeError, sess, sess.CurrentNodeID, map[string]interface{}{"error": flow.ErrMaxStepsExceeded})
			e.emit(events.KindSessionCompleted, sess, sess.CurrentNodeID, map[string]interface{}{"status": string(sess.Status)})
			break
		}

		node, ok := e.flow.NodeByID(sess.CurrentNodeID)
		if !ok {
			sess.Status = flow.StatusError
			e.emit(events.KindNodeError, sess, sess.CurrentNodeID, map[string]interface{}{"error": flow.ErrNodeNotFound})
			e.emit(events.KindSessionCompleted, sess, sess.CurrentNodeID, map[string]interface{}{"status": string(sess.Status)})
			break
		}

		e.emit(events.KindNodeStarted, sess, node.ID, nil)

		stepInput := input
		input = nil

		start := time.Now()
		result := executor.Execute(handler.Request{
			Ctx:                  ctx,
			Node:                 node,
			Session:              sess,
			Input:                stepInput,
			Services:             e.opts.Services,
			DefaultToolTimeoutMS: e.opts.DefaultToolTimeoutMS,
		})
		duration := time.Since(start)

		sess.History = append(sess.History, flow.ExecutionStep{
			StepID:     uuid.New().String(),
			NodeID:     node.ID,
			NodeKind:   node.Kind,
			Timestamp:  start.UTC(),
			Input:      stepInput,
			Output:     result.Output,
			DurationMS: duration.Milliseconds(),
			Error:      result.Err,
		})

		status := "success"
		if result.Err != nil {
			status = "error"
		}
		if e.opts.Metrics != nil {
			e.opts.Metrics.IncrementSteps(e.flow.ID, string(node.Kind))
			e.opts.Metrics.RecordStepLatency(e.flow.ID, node.ID, duration, status)
			if result.Retried {
				e.opts.Metrics.IncrementRetries(e.flow.ID, node.ID)
			}
		}

		if result.Err != nil {
			e.emit(events.KindNodeError, sess, node.ID, map[string]interface{}{"error": result.Err})
		} else {
			e.emit(events.KindNodeCompleted, sess, node.ID, nil)
		}

		sess.ApplyVariables(result.Variables)

		if result.Message != "" {
			e.emit(events.KindMessageSent, sess, node.ID, map[string]interface{}{"message": result.Message})
		}

		if result.Err != nil {
			sess.Status = flow.StatusError
			e.emit(events.KindSessionCompleted, sess, node.ID, map[string]interface{}{"status": string(sess.Status)})
			break
		}

		if result.WaitForInput {
			sess.Status = flow.StatusWaitingInput
			break
		}

		if result.End {
			terminal := result.TerminalStatus
			if terminal == "" {
				terminal = flow.StatusCompleted
			}
			sess.Status = terminal
			if terminal == flow.StatusEscalated {
				e.emit(events.KindSessionEscalated, sess, node.ID, escalationMeta(result.Output))
				if e.opts.Metrics != nil {
					e.opts.Metrics.IncrementEscalations(e.flow.ID)
				}
			}
			e.emit(events.KindSessionCompleted, sess, node.ID, map[string]interface{}{"status": string(terminal)})
			break
		}

		nextID, ok := e.pickNext(node, result)
		if !ok {
			sess.Status = flow.StatusCompleted
			e.emit(events.KindSessionCompleted, sess, node.ID, map[string]interface{}{"status": string(sess.Status)})
			break
		}
		sess.CurrentNodeID = nextID
		steps++
	}

	sess.UpdatedAt = time.Now().UTC()
	e.opts.Store.Set(ctx, sess)
}

// pickNext implements flow.md §4.6 step 10: an explicit NextNodeID wins;
// otherwise the engine walks outgoing edges, preferring one whose
// sourceHandle/label matches an "edgeHint" carried in the handler's
// Output, else the first outgoing edge.
func (e *Engine) pickNext(node *flow.Node, result flow.NodeResult) (string, bool) {
	if result.NextNodeID != nil {
		return *result.NextNodeID, true
	}

	edges := e.flow.OutgoingEdges(node.ID)
	if len(edges) == 0 {
		return "", false
	}

	if hint, ok := outputHint(result.Output); ok {
		for _, edge := range edges {
			if edge.SourceHandle != nil && *edge.SourceHandle == hint {
				return edge.Target, true
			}
			if edge.Label != nil && *edge.Label == hint {
				return edge.Target, true
			}
		}
	}

	return edges[0].Target, true
}

func outputHint(output interface{}) (string, bool) {
	m, ok := output.(map[string]interface{})
	if !ok {
		return "", false
	}
	v, ok := m["edgeHint"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func escalationMeta(output interface{}) map[string]interface{} {
	m, ok := output.(map[string]interface{})
	if !ok {
		return nil
	}
	return map[string]interface{}{"reason": m["reason"]}
}

func (e *Engine) emit(kind events.Kind, sess *flow.Session, nodeID string, meta map[string]interface{}) {
	if e.opts.Bus == nil {
		return
	}
	e.opts.Bus.Emit(events.Event{
		Kind:      kind,
		SessionID: sess.ID,
		FlowID:    e.flow.ID,
		NodeID:    nodeID,
		Meta:      meta,
	})
}
