// Package orchestrator wires schema loading, the wizard controller and the
// export pipeline behind a single entry point.
package orchestrator
