// Package services defines the shared error taxonomy for external
// collaborators and pipeline components. Sentinel markers classify failures so
// the orchestrator can decide between skipping, escalating to the operator, or
// refusing to start.
package services
