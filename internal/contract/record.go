package contract

// Record is the persisted medical-record asset. UserID is resolved from the
// client certificate at write time; CreatedBy is caller-supplied attribution
// and independent of it. The claim flags are reserved for a future claims
// workflow and are always false after a write from this contract.
type Record struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	CreatedBy    string `json:"createdBy"`
	Title        string `json:"title"`
	Details      string `json:"details"`
	RequestClaim bool   `json:"requestClaim"`
	ApproveClaim bool   `json:"approveClaim"`
}

// Entry is one scanned world-state pair. Exactly one of Record and Raw is
// set: Raw carries the stored bytes verbatim when they do not parse as a
// Record, so malformed legacy values surface instead of failing the scan.
type Entry struct {
	Key    string  `json:"key"`
	Record *Record `json:"record,omitempty"`
	Raw    string  `json:"raw,omitempty"`
}

// HistoryEntry is one prior version of a key, most recent first per the
// ledger's convention. Same parsed-or-raw split as Entry; a deletion has
// IsDelete set and neither payload field.
type HistoryEntry struct {
	TxID      string  `json:"txId"`
	Timestamp string  `json:"timestamp,omitempty"`
	IsDelete  bool    `json:"isDelete"`
	Record    *Record `json:"record,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}
