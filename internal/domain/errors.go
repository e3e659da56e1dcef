package domain

import "errors"

// Sentinel errors for domain operations.
var (
	// ErrNoActions is returned when a plan has no actions.
	ErrNoActions = errors.New("plan has no actions")

	// ErrInitialActionHasDependencies is returned when the first action in a
	// plan declares dependencies (there is nothing prior for it to depend on).
	ErrInitialActionHasDependencies = errors.New("initial action cannot have dependencies")

	// ErrUnknownParent is returned when a dependency references a contract
	// name that no earlier action in the plan produces.
	ErrUnknownParent = errors.New("action depends on a contract that is not defined previously")

	// ErrProxyMissingImpl is returned when a DEPLOY_PROXY action has no IMPL
	// dependency.
	ErrProxyMissingImpl = errors.New("deploy proxy action has no dependency on an implementation")

	// ErrMissingField is returned when a required field for an action type is
	// absent.
	ErrMissingField = errors.New("required field is missing for action type")

	// ErrDependencyUnresolved is recorded on an action (FAILED_DEPENDENCIES)
	// when one of its dependencies cannot be found in the completed table.
	ErrDependencyUnresolved = errors.New("dependency cannot be resolved")

	// ErrNotFound is returned by repositories when a requested resource does
	// not exist.
	ErrNotFound = errors.New("not found")
)
