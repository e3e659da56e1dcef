// Package plan ingests a structured deployment plan document (JSON or
// YAML) into a validated models.Workflow. This is component A of the
// engine: a single validation pass enforcing the five structural
// invariants of the plan, rejecting the first violation it finds.
package plan

import (
	"encoding/json"
	"fmt"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/simbachain/libsimba-deploy/internal/domain"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// Document is the wire shape of a plan: the same fields as
// models.Workflow, decoded independently so that a malformed document
// produces a decode error rather than a half-built Workflow.
type Document struct {
	AppName    string           `json:"app_name" yaml:"app_name"`
	Org        string           `json:"org" yaml:"org"`
	Blockchain string           `json:"blockchain" yaml:"blockchain"`
	Storage    string           `json:"storage,omitempty" yaml:"storage,omitempty"`
	Actions    []*models.Action `json:"actions" yaml:"actions"`
}

// ParseJSON decodes a JSON-shaped plan document and validates it into
// a Workflow.
func ParseJSON(data []byte) (*models.Workflow, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding plan document: %w", err)
	}
	return Build(&doc)
}

// ParseYAML decodes a YAML-shaped plan document and validates it into
// a Workflow. Plans are conventionally authored as JSON (spec §6.1)
// but orchestration tooling in this ecosystem commonly prefers YAML
// (mirroring the teacher's compose configuration format), so both are
// accepted. The YAML is decoded generically and re-encoded as JSON, so
// nested actions and dependencies use the same snake_case json field
// names as ParseJSON.
func ParseYAML(data []byte) (*models.Workflow, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding plan document: %w", err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding plan document: %w", err)
	}
	return ParseJSON(asJSON)
}

// Build validates a decoded Document against the five structural
// invariants of spec.md §3 and, on success, wraps it into a fresh
// Workflow with an empty completed table. It is a single pass that
// rejects the first violation it finds.
func Build(doc *Document) (*models.Workflow, error) {
	if len(doc.Actions) == 0 {
		return nil, domain.ErrNoActions
	}

	seen := make(map[string]bool, len(doc.Actions))
	for i, action := range doc.Actions {
		if i == 0 && len(action.Dependencies) > 0 {
			return nil, domain.ErrInitialActionHasDependencies
		}

		for _, dep := range action.Dependencies {
			if err := dep.Validate(); err != nil {
				return nil, err
			}
			if !seen[dep.Parent] {
				return nil, unresolvedParentError(dep.Parent, seen)
			}
		}

		if action.ActionType == models.ActionDeployProxy && !action.HasImplDependency() {
			return nil, domain.ErrProxyMissingImpl
		}

		if err := action.ValidateFields(); err != nil {
			return nil, err
		}

		if action.ActionState == "" {
			action.ActionState = models.StateInited
		}
		if action.ContractName != "" {
			seen[action.ContractName] = true
		}
	}

	return &models.Workflow{
		AppName:    doc.AppName,
		Org:        doc.Org,
		Blockchain: doc.Blockchain,
		Storage:    doc.Storage,
		Actions:    doc.Actions,
		Completed:  make(map[string]*models.Action),
	}, nil
}

// unresolvedParentError wraps domain.ErrUnknownParent with the
// offending name and, when a plausibly-intended contract name exists
// among the ones already defined, a "did you mean" suggestion
// produced by a fuzzy match against the names seen so far — the same
// aid the teacher's contract selector gives when a --contract flag
// doesn't match anything exactly.
func unresolvedParentError(parent string, seen map[string]bool) error {
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	matches := fuzzy.Find(parent, names)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", domain.ErrUnknownParent, parent)
	}
	return fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnknownParent, parent, matches[0].Str)
}
