package model

// ChangeKind names the mutation that touched the team store.
type ChangeKind string

// Store mutation kinds.
const (
	ChangeCreated  ChangeKind = "created"
	ChangeUpdated  ChangeKind = "updated"
	ChangeScored   ChangeKind = "scored"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeReset    ChangeKind = "reset"
	ChangeReplaced ChangeKind = "replaced"
)

// Change describes a store mutation. TeamID is empty for bulk changes.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	TeamID string     `json:"team_id,omitempty"`
}
