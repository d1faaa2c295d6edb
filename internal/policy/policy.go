// Package policy is the static access-control table for the medrec contract.
// Roles are trusted attributes asserted by the Fabric CA at enrollment; this
// package only decides, it never verifies.
package policy

import "fmt"

type Role string

const (
	RoleDoctor Role = "doctor"
	RoleGov    Role = "gov"
)

type Operation string

const (
	OpCreate  Operation = "CreateAsset"
	OpRead    Operation = "ReadAsset"
	OpUpdate  Operation = "UpdateAsset"
	OpDelete  Operation = "DeleteAsset"
	OpScanAll Operation = "GetAllAssets"
	OpHistory Operation = "QueryHistoryOfAsset"
)

// rules maps an operation to the roles allowed to invoke it. An operation
// with no entry (or a nil slice) is unrestricted. Adding a role or gating a
// new operation is a change here, not in the contract code.
//
// DeleteAsset is deliberately absent: the shipped policy leaves it
// unrestricted, pending a product decision.
var rules = map[Operation][]Role{
	OpCreate:  {RoleDoctor},
	OpUpdate:  {RoleDoctor},
	OpScanAll: {RoleGov},
}

// denialMessages are surfaced verbatim to callers in failure results.
var denialMessages = map[Operation]string{
	OpCreate:  "User is not Authorized to create record, only doctor can create record.",
	OpUpdate:  "User is not Authorized to create record, only doctor can create record.",
	OpScanAll: "only gov can do this action",
}

// DenialError reports a role that is not permitted to perform an operation.
// It is returned by Authorize so callers can branch on it and hand the
// message back as a structured result instead of failing the transaction.
type DenialError struct {
	Op   Operation
	Role Role
}

func (e *DenialError) Error() string {
	if msg, ok := denialMessages[e.Op]; ok {
		return msg
	}
	return fmt.Sprintf("role %q is not authorized for %s", e.Role, e.Op)
}

// Authorize checks role against the rule table for op. It returns nil when
// the operation is unrestricted or the role is listed, and a *DenialError
// otherwise.
func Authorize(op Operation, role Role) error {
	allowed, gated := rules[op]
	if !gated || len(allowed) == 0 {
		return nil
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return &DenialError{Op: op, Role: role}
}

// Restricted reports whether op has any role gate at all.
func Restricted(op Operation) bool {
	return len(rules[op]) > 0
}
