package usecase

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/datagateway"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/modules/launchpad/paymentclient"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
	"github.com/runeforge-network/launchpad/modules/launchpad/signerclient"
)

const (
	testAdmin   = "admin.test"
	testPayment = "usdt.test"
	testCreator = "creator.test"

	// mainnet P2WPKH, used where a syntactically valid payout address is needed
	testBitcoinAddress = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
)

type fakeStore struct {
	mu        sync.Mutex
	runes     map[string]*runes.Rune
	runeOrder []string
	balances  map[string]map[string]uint128.Uint128
	holdings  map[string][]string
	transfers map[uuid.UUID]*entity.PendingTransfer
	settings  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		runes:     make(map[string]*runes.Rune),
		balances:  make(map[string]map[string]uint128.Uint128),
		holdings:  make(map[string][]string),
		transfers: make(map[uuid.UUID]*entity.PendingTransfer),
		settings:  make(map[string]string),
	}
}

func (s *fakeStore) clone() *fakeStore {
	clone := newFakeStore()
	for ticker, rune := range s.runes {
		copied := *rune
		clone.runes[ticker] = &copied
	}
	clone.runeOrder = slices.Clone(s.runeOrder)
	for ticker, accounts := range s.balances {
		clone.balances[ticker] = make(map[string]uint128.Uint128, len(accounts))
		for account, amount := range accounts {
			clone.balances[ticker][account] = amount
		}
	}
	for account, tickers := range s.holdings {
		clone.holdings[account] = slices.Clone(tickers)
	}
	for id, transfer := range s.transfers {
		copied := *transfer
		clone.transfers[id] = &copied
	}
	for key, value := range s.settings {
		clone.settings[key] = value
	}
	return clone
}

func (s *fakeStore) replaceWith(other *fakeStore) {
	s.runes = other.runes
	s.runeOrder = other.runeOrder
	s.balances = other.balances
	s.holdings = other.holdings
	s.transfers = other.transfers
	s.settings = other.settings
}

// fakeDataGateway is an in-memory LaunchpadDataGateway. Transactions take a
// snapshot of the store; Commit swaps it in, Rollback discards it. Row locks
// are irrelevant in a single-goroutine test.
type fakeDataGateway struct {
	store *fakeStore
}

var _ datagateway.LaunchpadDataGateway = (*fakeDataGateway)(nil)

func newFakeDataGateway() *fakeDataGateway {
	return &fakeDataGateway{store: newFakeStore()}
}

func (g *fakeDataGateway) BeginLaunchpadTx(_ context.Context) (datagateway.LaunchpadDataGatewayWithTx, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	return &fakeTxGateway{
		fakeDataGateway: fakeDataGateway{store: g.store.clone()},
		origin:          g.store,
	}, nil
}

func (g *fakeDataGateway) GetRune(_ context.Context, ticker string) (*runes.Rune, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	rune, ok := g.store.runes[ticker]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	copied := *rune
	return &copied, nil
}

func (g *fakeDataGateway) GetRuneForUpdate(ctx context.Context, ticker string) (*runes.Rune, error) {
	return g.GetRune(ctx, ticker)
}

func (g *fakeDataGateway) CreateRune(_ context.Context, rune *runes.Rune) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, ok := g.store.runes[rune.Ticker]; ok {
		return errors.WithStack(errs.Duplicate)
	}
	copied := *rune
	g.store.runes[rune.Ticker] = &copied
	g.store.runeOrder = append(g.store.runeOrder, rune.Ticker)
	return nil
}

func (g *fakeDataGateway) UpdateRune(_ context.Context, rune *runes.Rune) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, ok := g.store.runes[rune.Ticker]; !ok {
		return errors.WithStack(errs.NotFound)
	}
	copied := *rune
	g.store.runes[rune.Ticker] = &copied
	return nil
}

func (g *fakeDataGateway) GetRunes(_ context.Context, offset, limit int32) ([]*runes.Rune, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if int(offset) >= len(g.store.runeOrder) {
		return nil, nil
	}
	end := min(int(offset)+int(limit), len(g.store.runeOrder))
	result := make([]*runes.Rune, 0, end-int(offset))
	for _, ticker := range g.store.runeOrder[offset:end] {
		copied := *g.store.runes[ticker]
		result = append(result, &copied)
	}
	return result, nil
}

func (g *fakeDataGateway) GetBalance(_ context.Context, ticker, account string) (*entity.Balance, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	balance := &entity.Balance{Ticker: ticker, Account: account}
	if accounts, ok := g.store.balances[ticker]; ok {
		balance.Amount = accounts[account]
	}
	return balance, nil
}

func (g *fakeDataGateway) GetBalanceForUpdate(ctx context.Context, ticker, account string) (*entity.Balance, error) {
	return g.GetBalance(ctx, ticker, account)
}

func (g *fakeDataGateway) AddBalance(_ context.Context, ticker, account string, delta uint128.Uint128) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, ok := g.store.balances[ticker]; !ok {
		g.store.balances[ticker] = make(map[string]uint128.Uint128)
	}
	g.store.balances[ticker][account] = g.store.balances[ticker][account].Add(delta)
	return nil
}

func (g *fakeDataGateway) SetBalance(_ context.Context, ticker, account string, amount uint128.Uint128) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, ok := g.store.balances[ticker]; !ok {
		g.store.balances[ticker] = make(map[string]uint128.Uint128)
	}
	g.store.balances[ticker][account] = amount
	return nil
}

func (g *fakeDataGateway) AddHolding(_ context.Context, account, ticker string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if !slices.Contains(g.store.holdings[account], ticker) {
		g.store.holdings[account] = append(g.store.holdings[account], ticker)
	}
	return nil
}

func (g *fakeDataGateway) RemoveHolding(_ context.Context, account, ticker string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	g.store.holdings[account] = slices.DeleteFunc(g.store.holdings[account], func(t string) bool {
		return t == ticker
	})
	return nil
}

func (g *fakeDataGateway) GetHoldings(_ context.Context, account string, offset, limit int32) ([]string, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	tickers := g.store.holdings[account]
	if int(offset) >= len(tickers) {
		return nil, nil
	}
	end := min(int(offset)+int(limit), len(tickers))
	return slices.Clone(tickers[offset:end]), nil
}

func (g *fakeDataGateway) CreatePendingTransfer(_ context.Context, transfer *entity.PendingTransfer) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	copied := *transfer
	g.store.transfers[transfer.ID] = &copied
	return nil
}

func (g *fakeDataGateway) GetPendingTransferForUpdate(_ context.Context, id uuid.UUID) (*entity.PendingTransfer, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	transfer, ok := g.store.transfers[id]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	copied := *transfer
	return &copied, nil
}

func (g *fakeDataGateway) UpdatePendingTransferStatus(_ context.Context, id uuid.UUID, status entity.TransferStatus) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	transfer, ok := g.store.transfers[id]
	if !ok {
		return errors.WithStack(errs.NotFound)
	}
	transfer.Status = status
	transfer.UpdatedAt = time.Now()
	return nil
}

func (g *fakeDataGateway) GetPendingTransfersStuckSince(_ context.Context, status entity.TransferStatus, cutoff time.Time) ([]*entity.PendingTransfer, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	var result []*entity.PendingTransfer
	for _, transfer := range g.store.transfers {
		if transfer.Status == status && !transfer.CreatedAt.After(cutoff) {
			copied := *transfer
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (g *fakeDataGateway) GetSetting(_ context.Context, key string) (string, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	value, ok := g.store.settings[key]
	if !ok {
		return "", errors.WithStack(errs.NotFound)
	}
	return value, nil
}

func (g *fakeDataGateway) SetSetting(_ context.Context, key, value string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	g.store.settings[key] = value
	return nil
}

type fakeTxGateway struct {
	fakeDataGateway
	origin *fakeStore
	closed bool
}

var _ datagateway.LaunchpadDataGatewayWithTx = (*fakeTxGateway)(nil)

func (g *fakeTxGateway) Commit(_ context.Context) error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.origin.mu.Lock()
	defer g.origin.mu.Unlock()
	g.origin.replaceWith(g.store)
	return nil
}

func (g *fakeTxGateway) Rollback(_ context.Context) error {
	g.closed = true
	return nil
}

type fakePaymentClient struct {
	mu        sync.Mutex
	requests  []paymentclient.TransferRequest
	submitErr error
}

var _ paymentclient.Contract = (*fakePaymentClient)(nil)

func (c *fakePaymentClient) Transfer(_ context.Context, req paymentclient.TransferRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitErr != nil {
		return c.submitErr
	}
	c.requests = append(c.requests, req)
	return nil
}

type fakeSignerClient struct {
	mu       sync.Mutex
	requests []signerclient.SignRequest
	account  string
}

var _ signerclient.Contract = (*fakeSignerClient)(nil)

func (c *fakeSignerClient) Sign(_ context.Context, req signerclient.SignRequest) (*signerclient.SignResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return &signerclient.SignResponse{
		Signature: json.RawMessage(`"c2lnbmVk"`),
		RequestID: "req-1",
	}, nil
}

func (c *fakeSignerClient) SetAccount(account string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
}

func (c *fakeSignerClient) Account() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

type testEnv struct {
	usecase *Usecase
	dg      *fakeDataGateway
	payment *fakePaymentClient
	signer  *fakeSignerClient
	clock   clockwork.FakeClock
}

func newTestEnv() *testEnv {
	dg := newFakeDataGateway()
	payment := &fakePaymentClient{}
	signer := &fakeSignerClient{}
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	uc := New(dg, payment, signer, common.NetworkMainnet, testAdmin, testPayment, clock)
	return &testEnv{usecase: uc, dg: dg, payment: payment, signer: signer, clock: clock}
}

func (e *testEnv) createRune(ctx context.Context, ticker string, total, price uint64) *runes.Rune {
	rune, err := e.usecase.CreateRune(ctx, testAdmin, CreateRuneParams{
		Ticker:         ticker,
		LaunchType:     runes.LaunchTypeFixedPrice,
		Total:          uint128.From64(total),
		Price:          uint128.From64(price),
		CreatorAddress: testCreator,
	})
	if err != nil {
		panic(err)
	}
	return rune
}
