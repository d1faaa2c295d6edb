// Package contract implements the medical-record smart contract: role-gated
// CRUD over world state plus bulk and history queries. All durable state
// lives in the ledger; nothing is cached across invocations.
package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/rs/zerolog"

	"example.com/chaincode/medrec/internal/canonical"
	"example.com/chaincode/medrec/internal/identity"
	"example.com/chaincode/medrec/internal/policy"
)

type Contract struct {
	contractapi.Contract

	log zerolog.Logger
}

func New(log zerolog.Logger) *Contract {
	return &Contract{log: log}
}

// InitLedger is invoked once at instantiation. The ledger starts empty;
// there is no seed data to install.
func (c *Contract) InitLedger(ctx contractapi.TransactionContextInterface) (*Result, error) {
	return &Result{Success: true, Message: "Chaincode init Success...!"}, nil
}

// CheckRole returns the invoker's resolved identity, for callers that want
// to inspect their own attributes before submitting writes.
func (c *Contract) CheckRole(ctx contractapi.TransactionContextInterface) (*identity.Identity, error) {
	id, err := identity.Resolve(ctx.GetClientIdentity())
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// AssetExists reports whether the ledger holds a non-empty value for id.
func (c *Contract) AssetExists(ctx contractapi.TransactionContextInterface, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, errors.New("id is required")
	}

	b, err := ctx.GetStub().GetState(id)
	if err != nil {
		return false, fmt.Errorf("get state: %w", err)
	}
	return len(b) > 0, nil
}

// CreateAsset writes a new record under id. Only the doctor role may create.
// The existence pre-check is best effort: two creates racing on the same id
// are ultimately resolved by the ledger's read/write-set check at commit.
func (c *Contract) CreateAsset(ctx contractapi.TransactionContextInterface, id string, createdBy string, title string, details string) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}

	caller, err := identity.Resolve(ctx.GetClientIdentity())
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.OpCreate, caller.Role); err != nil {
		c.log.Info().Str("id", id).Str("role", string(caller.Role)).Msg("create denied")
		return failure(err.Error()), nil
	}

	exists, err := c.AssetExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return failure(fmt.Sprintf("The asset %s already exists...Try with new id.", id)), nil
	}

	record := Record{
		ID:           id,
		UserID:       caller.UserID,
		CreatedBy:    createdBy,
		Title:        title,
		Details:      details,
		RequestClaim: false,
		ApproveClaim: false,
	}
	return c.put(ctx, record)
}

// UpdateAsset overwrites the record under id in full. Fields not supplied are
// not carried over from the prior value, and both claim flags reset to false.
// Only the doctor role may update.
func (c *Contract) UpdateAsset(ctx contractapi.TransactionContextInterface, id string, createdBy string, title string, details string) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}

	caller, err := identity.Resolve(ctx.GetClientIdentity())
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.OpUpdate, caller.Role); err != nil {
		c.log.Info().Str("id", id).Str("role", string(caller.Role)).Msg("update denied")
		return failure(err.Error()), nil
	}

	exists, err := c.AssetExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return failure(fmt.Sprintf("The asset %s does not exist", id)), nil
	}

	updated := Record{
		ID:           id,
		UserID:       caller.UserID,
		CreatedBy:    createdBy,
		Title:        title,
		Details:      details,
		RequestClaim: false,
		ApproveClaim: false,
	}
	return c.put(ctx, updated)
}

// put canonicalizes record and writes it, echoing the just-written record and
// the transaction ID as the receipt.
func (c *Contract) put(ctx contractapi.TransactionContextInterface, record Record) (*Result, error) {
	stored, err := canonical.Marshal(record)
	if err != nil {
		return nil, err
	}
	if err := ctx.GetStub().PutState(record.ID, stored); err != nil {
		return nil, fmt.Errorf("put state: %w", err)
	}

	echo, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	c.log.Debug().Str("id", record.ID).Str("userId", record.UserID).Msg("record written")
	return &Result{Success: true, Data: string(echo), Response: ctx.GetStub().GetTxID()}, nil
}

// ReadAsset returns the stored bytes for id as-is, without re-parsing them.
// Reads are unrestricted.
func (c *Contract) ReadAsset(ctx contractapi.TransactionContextInterface, id string) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}

	b, err := ctx.GetStub().GetState(id)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	if len(b) == 0 {
		return failure(fmt.Sprintf("The asset %s does not exist", id)), nil
	}
	return &Result{Success: true, Data: string(b)}, nil
}

// DeleteAsset removes the record under id. The shipped policy leaves delete
// unrestricted; gating it on a role is an open product decision.
func (c *Contract) DeleteAsset(ctx contractapi.TransactionContextInterface, id string) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}

	exists, err := c.AssetExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return failure(fmt.Sprintf("The asset %s does not exist", id)), nil
	}

	if err := ctx.GetStub().DelState(id); err != nil {
		return nil, fmt.Errorf("del state: %w", err)
	}
	c.log.Debug().Str("id", id).Msg("record deleted")
	return &Result{Success: true, Response: ctx.GetStub().GetTxID()}, nil
}
