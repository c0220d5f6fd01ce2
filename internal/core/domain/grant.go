package domain

// GrantKind classifies an explicit access grant. Values are stored verbatim
// in the directory store.
type GrantKind string

const (
	GrantDirect        GrantKind = "Direct"
	GrantViaManager    GrantKind = "ViaManager"
	GrantViaDepartment GrantKind = "ViaAfdeling"
)

// AccessGrant is a store-resident exception that grants access outside the
// role-based rules. Its target is either one client or one whole department,
// never both and never neither.
type AccessGrant struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ClientID     *int64    `json:"client_id,omitempty"`
	DepartmentID *int64    `json:"department_id,omitempty"`
	Kind         GrantKind `json:"kind"`
	Active       bool      `json:"active"`
}

// TargetValid reports whether the grant satisfies the target XOR invariant.
// The store enforces this at write time; the evaluator re-checks it so a
// malformed row can never widen access.
func (g AccessGrant) TargetValid() bool {
	return (g.ClientID != nil) != (g.DepartmentID != nil)
}
