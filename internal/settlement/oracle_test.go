package settlement_test

import (
	"context"
	"testing"

	"github.com/JojoFlex1/done/internal/settlement"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateway struct {
	received []settlement.SubmitParams
}

// Submit is served as settlement_submit.
func (g *gateway) Submit(_ context.Context, params settlement.SubmitParams) (*settlement.SubmitResult, error) {
	if params.AmountLovelace <= 0 {
		return nil, errors.New("amount must be positive")
	}

	g.received = append(g.received, params)
	return &settlement.SubmitResult{TxHash: "9f2c1d"}, nil
}

func TestRPCOracle(t *testing.T) {
	g := &gateway{}

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("settlement", g))
	defer server.Stop()

	oracle := settlement.NewRPCOracle(rpc.DialInProc(server))
	defer oracle.Close()

	ref, err := oracle.SubmitSettlement(context.Background(), "sub-1", testAddress, 3_000_000)
	require.NoError(t, err)
	assert.Equal(t, "9f2c1d", ref)

	require.Len(t, g.received, 1)
	assert.Equal(t, "sub-1", g.received[0].IdempotencyKey)
	assert.Equal(t, testAddress, g.received[0].To)
	assert.Equal(t, int64(3_000_000), g.received[0].AmountLovelace)

	_, err = oracle.SubmitSettlement(context.Background(), "sub-2", testAddress, 0)
	require.Error(t, err)
}

func TestDialRPCOracleRequiresURL(t *testing.T) {
	_, err := settlement.DialRPCOracle(context.Background(), "")
	require.Error(t, err)
}

func TestMockOracle(t *testing.T) {
	ctx := context.Background()
	o := settlement.NewMockOracle()

	a, err := o.SubmitSettlement(ctx, "sub-1", testAddress, 1)
	require.NoError(t, err)
	b, err := o.SubmitSettlement(ctx, "sub-2", testAddress, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// a repeated key is the same transfer
	again, err := o.SubmitSettlement(ctx, "sub-1", testAddress, 1)
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.Len(t, o.Calls(), 2)

	// same call sequence, same references
	other := settlement.NewMockOracle()
	c, err := other.SubmitSettlement(ctx, "sub-1", testAddress, 1)
	require.NoError(t, err)
	assert.Equal(t, a, c)

	o.FailNext(assert.AnError)
	_, err = o.SubmitSettlement(ctx, "sub-3", testAddress, 1)
	require.ErrorIs(t, err, assert.AnError)
	assert.Len(t, o.Calls(), 2)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = o.SubmitSettlement(cancelled, "sub-3", testAddress, 1)
	require.ErrorIs(t, err, context.Canceled)
}
