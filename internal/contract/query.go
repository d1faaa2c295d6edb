package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"example.com/chaincode/medrec/internal/identity"
	"example.com/chaincode/medrec/internal/policy"
)

// GetAllAssets enumerates every record in the chaincode namespace. Only the
// gov role may enumerate; the gate is checked before any ledger read. Values
// that do not parse as records are kept raw rather than failing the scan.
func (c *Contract) GetAllAssets(ctx contractapi.TransactionContextInterface) (*Result, error) {
	caller, err := identity.Resolve(ctx.GetClientIdentity())
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.OpScanAll, caller.Role); err != nil {
		c.log.Info().Str("role", string(caller.Role)).Msg("bulk read denied")
		return failure(err.Error()), nil
	}

	// Empty start and end keys scan the whole namespace.
	iter, err := ctx.GetStub().GetStateByRange("", "")
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	defer iter.Close()

	entries := make([]Entry, 0)
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("iter next: %w", err)
		}
		entries = append(entries, c.decodeEntry(kv.Key, kv.Value))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}
	return &Result{Success: true, Data: string(data)}, nil
}

// QueryHistoryOfAsset replays every prior version of id, most recent first.
// Unrestricted. A key the ledger has never held yields a failure result.
func (c *Contract) QueryHistoryOfAsset(ctx contractapi.TransactionContextInterface, id string) (*Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}

	iter, err := ctx.GetStub().GetHistoryForKey(id)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer iter.Close()

	// Accumulator is local to the call; versions must never leak between
	// invocations.
	entries := make([]HistoryEntry, 0)
	for iter.HasNext() {
		km, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("iter next: %w", err)
		}

		entry := HistoryEntry{TxID: km.TxId, IsDelete: km.IsDelete}
		if km.Timestamp != nil {
			t := time.Unix(km.Timestamp.Seconds, int64(km.Timestamp.Nanos)).UTC()
			entry.Timestamp = t.Format(time.RFC3339Nano)
		}
		if !km.IsDelete {
			decoded := c.decodeEntry(id, km.Value)
			entry.Record = decoded.Record
			entry.Raw = decoded.Raw
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return failureErr(fmt.Sprintf("%s does not exist", id)), nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}
	return &Result{Success: true, Data: string(data)}, nil
}

// decodeEntry parses value as a record, falling back to the raw string when
// the bytes are not a record. Malformed values are a per-entry condition,
// not a scan failure.
func (c *Contract) decodeEntry(key string, value []byte) Entry {
	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("stored value is not a record, keeping raw")
		return Entry{Key: key, Raw: string(value)}
	}
	return Entry{Key: key, Record: &rec}
}
