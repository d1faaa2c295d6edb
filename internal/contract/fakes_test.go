package contract

import (
	"fmt"
	"sort"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/rs/zerolog"
)

// fakeStub is an in-memory world state. Embedding the stub interface
// satisfies its full surface; only the methods the contract touches are
// implemented, anything else panics.
type fakeStub struct {
	shim.ChaincodeStubInterface

	state   map[string][]byte
	history map[string][]*queryresult.KeyModification
	txID    string

	getErr error
	putErr error

	rangeCalls    int
	lastStateIter *fakeStateIterator
	lastHistIter  *fakeHistoryIterator
}

func newFakeStub() *fakeStub {
	return &fakeStub{
		state:   map[string][]byte{},
		history: map[string][]*queryresult.KeyModification{},
		txID:    "tx1",
	}
}

func (s *fakeStub) GetState(key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.state[key], nil
}

func (s *fakeStub) PutState(key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.state[key] = value
	return nil
}

func (s *fakeStub) DelState(key string) error {
	delete(s.state, key)
	return nil
}

func (s *fakeStub) GetTxID() string {
	return s.txID
}

func (s *fakeStub) GetStateByRange(startKey string, endKey string) (shim.StateQueryIteratorInterface, error) {
	s.rangeCalls++
	if startKey != "" || endKey != "" {
		return nil, fmt.Errorf("fake supports only open-ended scans, got [%q,%q)", startKey, endKey)
	}

	keys := make([]string, 0, len(s.state))
	for k := range s.state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]*queryresult.KV, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &queryresult.KV{Key: k, Value: s.state[k]})
	}
	s.lastStateIter = &fakeStateIterator{kvs: kvs}
	return s.lastStateIter, nil
}

func (s *fakeStub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	s.lastHistIter = &fakeHistoryIterator{mods: s.history[key]}
	return s.lastHistIter, nil
}

type fakeStateIterator struct {
	shim.StateQueryIteratorInterface

	kvs    []*queryresult.KV
	pos    int
	closed bool
}

func (it *fakeStateIterator) HasNext() bool { return it.pos < len(it.kvs) }

func (it *fakeStateIterator) Next() (*queryresult.KV, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("iterator exhausted")
	}
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *fakeStateIterator) Close() error {
	it.closed = true
	return nil
}

type fakeHistoryIterator struct {
	shim.HistoryQueryIteratorInterface

	mods   []*queryresult.KeyModification
	pos    int
	closed bool
}

func (it *fakeHistoryIterator) HasNext() bool { return it.pos < len(it.mods) }

func (it *fakeHistoryIterator) Next() (*queryresult.KeyModification, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("iterator exhausted")
	}
	km := it.mods[it.pos]
	it.pos++
	return km, nil
}

func (it *fakeHistoryIterator) Close() error {
	it.closed = true
	return nil
}

type fakeClientIdentity struct {
	cid.ClientIdentity

	attrs map[string]string
}

func (f *fakeClientIdentity) GetAttributeValue(name string) (string, bool, error) {
	v, ok := f.attrs[name]
	return v, ok, nil
}

// fakeCtx wires a stub and a client identity into the transaction context
// the contract methods consume.
type fakeCtx struct {
	stub *fakeStub
	ci   cid.ClientIdentity
}

func (c *fakeCtx) GetStub() shim.ChaincodeStubInterface { return c.stub }

func (c *fakeCtx) GetClientIdentity() cid.ClientIdentity { return c.ci }

func ctxAs(stub *fakeStub, userID string, role string) *fakeCtx {
	return &fakeCtx{
		stub: stub,
		ci:   &fakeClientIdentity{attrs: map[string]string{"userId": userID, "role": role}},
	}
}

func newContract() *Contract {
	return New(zerolog.Nop())
}
