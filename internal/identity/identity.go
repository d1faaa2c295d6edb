// Package identity extracts the invoking caller's userId and role from the
// Fabric client identity. The certificate has already been verified by the
// peer; attributes are trusted as-is.
package identity

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"

	"example.com/chaincode/medrec/internal/policy"
)

const (
	attrUserID = "userId"
	attrRole   = "role"
)

// Identity is the per-invocation caller, never persisted.
type Identity struct {
	UserID string      `json:"userId"`
	Role   policy.Role `json:"role"`
}

// Resolve reads the userId and role attributes from the client certificate.
// A missing attribute is an error: proceeding with an empty role would slip
// past every role gate, so the enclosing operation must abort instead.
func Resolve(ci cid.ClientIdentity) (Identity, error) {
	userID, err := attribute(ci, attrUserID)
	if err != nil {
		return Identity{}, err
	}
	role, err := attribute(ci, attrRole)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Role: policy.Role(role)}, nil
}

func attribute(ci cid.ClientIdentity, name string) (string, error) {
	value, found, err := ci.GetAttributeValue(name)
	if err != nil {
		return "", fmt.Errorf("read attribute %q: %w", name, err)
	}
	if !found {
		return "", fmt.Errorf("client certificate has no %q attribute", name)
	}
	return value, nil
}
