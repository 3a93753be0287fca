// Package policy makes the two deliberately-configurable reconciliation
// behaviors explicit instead of baking in a guess: what to do when a
// document has no discoverable revision history table, and how to resolve
// a document carrying more than one project phase label.
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
)

// Policy is the on-disk policy file shape.
type Policy struct {
	MissingHistory string `json:"missing_history"`
	PhaseAmbiguity string `json:"phase_ambiguity"`
}

// Default returns the policy used when no file is supplied: an absent
// history table does not block success, and the first phase label in
// register order wins.
func Default() Policy {
	return Policy{
		MissingHistory: string(reconcile.HistoryAllow),
		PhaseAmbiguity: string(reconcile.PhaseFirst),
	}
}

var schemaMap = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"missing_history": map[string]any{
			"type": "string",
			"enum": []any{string(reconcile.HistoryAllow), string(reconcile.HistoryMismatch)},
		},
		"phase_ambiguity": map[string]any{
			"type": "string",
			"enum": []any{string(reconcile.PhaseFirst), string(reconcile.PhaseEmpty)},
		},
	},
}

// Load reads and validates a policy file. Fields left out of the file keep
// their defaults.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	if err := validateAgainstSchema(schemaMap, data); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return p, nil
}

// Options converts the policy into reconciler options.
func (p Policy) Options() []reconcile.Option {
	return []reconcile.Option{
		reconcile.WithMissingHistory(reconcile.MissingHistory(p.MissingHistory)),
		reconcile.WithPhaseAmbiguity(reconcile.PhaseAmbiguity(p.PhaseAmbiguity)),
	}
}

func validateAgainstSchema(schema map[string]any, data []byte) error {
	b, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("policy.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("policy.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("policy does not match schema: %w", err)
	}
	return nil
}
