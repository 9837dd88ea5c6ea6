package catalog

import "time"

// ItemAction classifies the outcome of syncing one remote product.
type ItemAction string

const (
	ActionSynced ItemAction = "synced"
	ActionHidden ItemAction = "hidden"
	ActionFailed ItemAction = "failed"
)

// ItemResult is the per-product outcome of a sync run.
type ItemResult struct {
	PrintifyProductID string     `json:"printify_product_id"`
	Title             string     `json:"title,omitempty"`
	Action            ItemAction `json:"action"`
	VariantsUpserted  int        `json:"variants_upserted,omitempty"`
	VariantsDeleted   int        `json:"variants_deleted,omitempty"`
	Error             string     `json:"error,omitempty"`
}

// Report summarizes one sync run. HiddenAbsent counts products hidden in
// the final pass because they vanished from the remote catalog entirely.
type Report struct {
	Trigger      string        `json:"trigger"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`
	Synced       int           `json:"synced"`
	Errors       int           `json:"errors"`
	Hidden       int           `json:"hidden"`
	HiddenAbsent int64         `json:"hidden_absent"`
	Items        []ItemResult  `json:"items"`
}
