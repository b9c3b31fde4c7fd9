// Package fake provides an in-memory UnitOfWork for service tests. Do
// snapshots all stores before running fn and restores them when fn returns
// an error, mirroring the commit/rollback semantics of the real thing.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/domain/transaction"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// UoW is an in-memory repository.UnitOfWork. Stores hold copies, so loaded
// aggregates must be written back with Update to take effect, like rows.
type UoW struct {
	mu sync.Mutex

	accounts     map[uuid.UUID]account.Account
	cards        map[uuid.UUID]card.Card
	transactions map[uuid.UUID]transaction.Transaction
	transfers    map[uuid.UUID]transfer.MoneyTransfer
	holders      map[string]holder.AccountHolder

	// Commits and Rollbacks count completed Do calls by outcome.
	Commits   int
	Rollbacks int
}

// NewUoW creates an empty in-memory unit of work.
func NewUoW() *UoW {
	return &UoW{
		accounts:     make(map[uuid.UUID]account.Account),
		cards:        make(map[uuid.UUID]card.Card),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		transfers:    make(map[uuid.UUID]transfer.MoneyTransfer),
		holders:      make(map[string]holder.AccountHolder),
	}
}

// Do runs fn against the stores, rolling every store back if fn fails.
func (u *UoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	snapAccounts := copyMap(u.accounts)
	snapCards := copyMap(u.cards)
	snapTransactions := copyMap(u.transactions)
	snapTransfers := copyMap(u.transfers)
	snapHolders := copyMap(u.holders)

	if err := fn(u); err != nil {
		u.accounts = snapAccounts
		u.cards = snapCards
		u.transactions = snapTransactions
		u.transfers = snapTransfers
		u.holders = snapHolders
		u.Rollbacks++
		return err
	}
	u.Commits++
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Accounts implements repository.UnitOfWork.
func (u *UoW) Accounts() repository.AccountRepository { return (*accountStore)(u) }

// Cards implements repository.UnitOfWork.
func (u *UoW) Cards() repository.CardRepository { return (*cardStore)(u) }

// Transactions implements repository.UnitOfWork.
func (u *UoW) Transactions() repository.TransactionRepository { return (*transactionStore)(u) }

// MoneyTransfers implements repository.UnitOfWork.
func (u *UoW) MoneyTransfers() repository.MoneyTransferRepository { return (*transferStore)(u) }

// Holders implements repository.UnitOfWork.
func (u *UoW) Holders() repository.HolderRepository { return (*holderStore)(u) }

// SeedAccount stores an account directly, outside any transaction.
func (u *UoW) SeedAccount(a *account.Account) { u.accounts[a.ID] = *a }

// SeedCard stores a card directly, outside any transaction.
func (u *UoW) SeedCard(c *card.Card) { u.cards[c.ID] = *c }

// SeedHolder stores a holder directly, outside any transaction.
func (u *UoW) SeedHolder(h *holder.AccountHolder) { u.holders[h.ID] = *h }

// TransactionCount reports how many transactions are stored.
func (u *UoW) TransactionCount() int { return len(u.transactions) }

// TransferCount reports how many money transfers are stored.
func (u *UoW) TransferCount() int { return len(u.transfers) }

type accountStore UoW

func (s *accountStore) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *accountStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.Get(ctx, id)
}

func (s *accountStore) GetByNumber(_ context.Context, number account.Number) (*account.Account, error) {
	for _, a := range s.accounts {
		if a.Number == number {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *accountStore) ListByHolder(_ context.Context, holderID string) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range s.accounts {
		if a.HolderID == holderID {
			copied := a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *accountStore) Create(_ context.Context, a *account.Account) error {
	if _, exists := s.accounts[a.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.accounts[a.ID] = *a
	return nil
}

func (s *accountStore) Update(_ context.Context, a *account.Account) error {
	if _, exists := s.accounts[a.ID]; !exists {
		return domain.ErrNotFound
	}
	s.accounts[a.ID] = *a
	return nil
}

type cardStore UoW

func (s *cardStore) Get(_ context.Context, id uuid.UUID) (*card.Card, error) {
	c, ok := s.cards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *cardStore) GetByCardNumber(_ context.Context, number card.Number) (*card.Card, error) {
	for _, c := range s.cards {
		if c.Number == number {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *cardStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*card.Card, error) {
	var out []*card.Card
	for _, c := range s.cards {
		if c.AccountID == accountID {
			copied := c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *cardStore) Create(_ context.Context, c *card.Card) error {
	if _, exists := s.cards[c.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.cards[c.ID] = *c
	return nil
}

func (s *cardStore) Update(_ context.Context, c *card.Card) error {
	if _, exists := s.cards[c.ID]; !exists {
		return domain.ErrNotFound
	}
	s.cards[c.ID] = *c
	return nil
}

type transactionStore UoW

func (s *transactionStore) Get(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *transactionStore) ListByAccount(
	_ context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range s.transactions {
		touches := (t.SourceAccountID != nil && *t.SourceAccountID == accountID) ||
			(t.TargetAccountID != nil && *t.TargetAccountID == accountID)
		if touches && !t.CreatedAt.Before(from) && !t.CreatedAt.After(to) {
			copied := t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *transactionStore) Create(_ context.Context, t *transaction.Transaction) error {
	if _, exists := s.transactions[t.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.transactions[t.ID] = *t
	return nil
}

func (s *transactionStore) Update(_ context.Context, t *transaction.Transaction) error {
	if _, exists := s.transactions[t.ID]; !exists {
		return domain.ErrNotFound
	}
	s.transactions[t.ID] = *t
	return nil
}

type transferStore UoW

func (s *transferStore) Get(_ context.Context, id uuid.UUID) (*transfer.MoneyTransfer, error) {
	mt, ok := s.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &mt, nil
}

func (s *transferStore) ListByCardNumber(_ context.Context, number card.Number) ([]*transfer.MoneyTransfer, error) {
	var out []*transfer.MoneyTransfer
	for _, mt := range s.transfers {
		if mt.SourceCardNumber == number || mt.TargetCardNumber == number {
			copied := mt
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *transferStore) Create(_ context.Context, mt *transfer.MoneyTransfer) error {
	if _, exists := s.transfers[mt.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.transfers[mt.ID] = *mt
	return nil
}

func (s *transferStore) Update(_ context.Context, mt *transfer.MoneyTransfer) error {
	if _, exists := s.transfers[mt.ID]; !exists {
		return domain.ErrNotFound
	}
	s.transfers[mt.ID] = *mt
	return nil
}

type holderStore UoW

func (s *holderStore) Get(_ context.Context, id string) (*holder.AccountHolder, error) {
	h, ok := s.holders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (s *holderStore) GetByEmail(_ context.Context, email holder.EmailAddress) (*holder.AccountHolder, error) {
	for _, h := range s.holders {
		if h.Email == email {
			return &h, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *holderStore) Create(_ context.Context, h *holder.AccountHolder) error {
	if _, exists := s.holders[h.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.holders[h.ID] = *h
	return nil
}

func (s *holderStore) Update(_ context.Context, h *holder.AccountHolder) error {
	if _, exists := s.holders[h.ID]; !exists {
		return domain.ErrNotFound
	}
	s.holders[h.ID] = *h
	return nil
}

// RecorderBus is an eventbus.EventBus that records published events.
type RecorderBus struct {
	mu     sync.Mutex
	Events []domain.Event
}

// Publish implements eventbus.EventBus.
func (b *RecorderBus) Publish(_ context.Context, events ...domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, events...)
}

// Subscribe implements eventbus.EventBus. Recorded buses have no handlers.
func (b *RecorderBus) Subscribe(string, eventbus.HandlerFunc) {}

// Types returns the recorded event types in order.
func (b *RecorderBus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.Events))
	for _, e := range b.Events {
		out = append(out, e.Type())
	}
	return out
}
