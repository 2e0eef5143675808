package settlement

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

const rpcMethodSubmit = "settlement_submit"

// MockOracle returns deterministic mock_tx_ references without touching a network.
// A repeated idempotency key returns the reference of the first call.
type MockOracle struct {
	mu       sync.Mutex
	seq      uint64
	failures []error
	calls    []MockCall
	byKey    map[string]string
}

type MockCall struct {
	IdempotencyKey string
	ToAddress      string
	AmountLovelace int64
	Reference      string
}

func NewMockOracle() *MockOracle {
	return &MockOracle{byKey: make(map[string]string)}
}

// FailNext makes the next calls fail with the given errors, in order.
func (o *MockOracle) FailNext(errs ...error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.failures = append(o.failures, errs...)
}

func (o *MockOracle) SubmitSettlement(ctx context.Context, idempotencyKey string, toAddress string, amountLovelace int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.failures) > 0 {
		err := o.failures[0]
		o.failures = o.failures[1:]
		return "", err
	}

	if ref, ok := o.byKey[idempotencyKey]; ok {
		return ref, nil
	}

	o.seq++
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%s:%d", o.seq, toAddress, amountLovelace))
	ref := "mock_tx_" + hex.EncodeToString(sum[:16])

	o.byKey[idempotencyKey] = ref
	o.calls = append(o.calls, MockCall{IdempotencyKey: idempotencyKey, ToAddress: toAddress, AmountLovelace: amountLovelace, Reference: ref})

	return ref, nil
}

// Calls returns the transfers made so far. Repeated idempotency keys are not counted.
func (o *MockOracle) Calls() []MockCall {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]MockCall, len(o.calls))
	copy(out, o.calls)

	return out
}

// RPCOracle submits settlements to a JSON-RPC settlement gateway.
type RPCOracle struct {
	client *rpc.Client
}

// SubmitParams is the single parameter of settlement_submit. The gateway deduplicates
// transfers by IdempotencyKey.
type SubmitParams struct {
	IdempotencyKey string `json:"idempotencyKey"`
	To             string `json:"to"`
	AmountLovelace int64  `json:"amountLovelace"`
}

// SubmitResult is the result of settlement_submit.
type SubmitResult struct {
	TxHash string `json:"txHash"`
}

func DialRPCOracle(ctx context.Context, url string) (*RPCOracle, error) {
	if len(url) == 0 {
		return nil, errors.New("settlement rpc url is empty")
	}

	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial settlement rpc")
	}

	return NewRPCOracle(client), nil
}

func NewRPCOracle(client *rpc.Client) *RPCOracle {
	return &RPCOracle{client: client}
}

func (o *RPCOracle) SubmitSettlement(ctx context.Context, idempotencyKey string, toAddress string, amountLovelace int64) (string, error) {
	params := SubmitParams{
		IdempotencyKey: idempotencyKey,
		To:             toAddress,
		AmountLovelace: amountLovelace,
	}

	var res SubmitResult
	if err := o.client.CallContext(ctx, &res, rpcMethodSubmit, params); err != nil {
		return "", errors.Wrap(err, "settlement rpc call failed")
	}

	if len(res.TxHash) == 0 {
		return "", errors.New("settlement rpc returned an empty reference")
	}

	return res.TxHash, nil
}

func (o *RPCOracle) Close() {
	o.client.Close()
}
