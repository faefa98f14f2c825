package handler

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/interp"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]{10,}$`)
)

// CollectInput implements flow.md §4.4.3's two-phase behaviour: prompt and
// wait on first entry, validate and either retry or continue on resume.
func CollectInput(req Request) flow.NodeResult {
	cfg, err := flow.DecodeConfig[flow.CollectInputConfig](req.Node.Config)
	if err != nil {
		return fatal(flow.ErrExecutionError, "decode collect_input config: "+err.Error())
	}

	if req.Input == nil {
		var result flow.NodeResult
		if cfg.Prompt != nil {
			result.Message = interp.Interpolate(*cfg.Prompt, req.Session.Variables)
		}
		result.WaitForInput = true
		return result
	}

	input := *req.Input
	attemptsKey := cfg.VariableName + "_attempts"

	if errMsg := validateInput(cfg.Validation, input); errMsg != "" {
		if cfg.Retry != nil {
			attempts := currentAttempts(req.Session, attemptsKey) + 1
			patch := map[string]interface{}{attemptsKey: attempts}
			if attempts >= cfg.Retry.MaxAttempts {
				res := fatal(flow.ErrMaxRetriesExceeded, fmt.Sprintf("%s: max retry attempts (%d) exceeded", cfg.VariableName, cfg.Retry.MaxAttempts))
				res.Variables = patch
				return res
			}
			return flow.NodeResult{
				Message:      cfg.Retry.RetryMessage,
				Variables:    patch,
				WaitForInput: true,
			}
		}

		msg := errMsg
		if cfg.Validation != nil && cfg.Validation.ErrorMessage != "" {
			msg = cfg.Validation.ErrorMessage
		}
		return flow.NodeResult{Message: msg, WaitForInput: true}
	}

	patch := map[string]interface{}{cfg.VariableName: input}
	if cfg.Retry != nil {
		patch[attemptsKey] = 0
	}
	return flow.NodeResult{Variables: patch}
}

func currentAttempts(sess *flow.Session, key string) int {
	v, ok := sess.Variables[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// validateInput returns a default error message (possibly "Invalid
// input. Please try again.") when input fails validation, or "" on
// success. validation == nil accepts everything.
func validateInput(validation *flow.ValidationConfig, input string) string {
	const defaultMessage = "Invalid input. Please try again."
	if validation == nil {
		return ""
	}

	switch validation.Type {
	case "text":
		if validation.MinLength != nil && len(input) < *validation.MinLength {
			return defaultMessage
		}
		if validation.MaxLength != nil && len(input) > *validation.MaxLength {
			return defaultMessage
		}
		return ""
	case "number":
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return defaultMessage
		}
		if validation.Min != nil && n < *validation.Min {
			return defaultMessage
		}
		if validation.Max != nil && n > *validation.Max {
			return defaultMessage
		}
		return ""
	case "email":
		if !emailPattern.MatchString(input) {
			return defaultMessage
		}
		return ""
	case "phone":
		if !phonePattern.MatchString(input) {
			return defaultMessage
		}
		return ""
	case "regex":
		if validation.Pattern == "" {
			return ""
		}
		re, err := regexp.Compile(validation.Pattern)
		if err != nil || !re.MatchString(input) {
			return defaultMessage
		}
		return ""
	case "date", "custom":
		// Pass-through: the spec requires no more than this for these
		// two validation types.
		return ""
	default:
		return ""
	}
}
