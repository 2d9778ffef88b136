package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
)

type shopRecord struct {
	shop         domain.Shop
	transactions []domain.Transaction
	deleted      bool
}

// Store keeps shops, withdrawals and history in process memory. It backs the
// memory driver and the workflow tests.
type Store struct {
	mu          sync.RWMutex
	shops       map[string]*shopRecord
	withdrawals map[string]*domain.Withdrawal

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// Units of work hold commitMu shared for their whole run; reads from
	// outside a unit hold it exclusively and so only see committed state.
	commitMu sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		shops:       make(map[string]*shopRecord),
		withdrawals: make(map[string]*domain.Withdrawal),
		locks:       make(map[string]*sync.Mutex),
	}
}

// PutShop inserts or replaces a shop, keeping its history.
func (s *Store) PutShop(shop domain.Shop) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shop.ID]
	if !ok {
		rec = &shopRecord{}
		s.shops[shop.ID] = rec
	}
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now().UTC()
	}
	if shop.UpdatedAt.IsZero() {
		shop.UpdatedAt = shop.CreatedAt
	}
	shop.Transactions = nil
	rec.shop = shop
	rec.deleted = false
}

type journal struct {
	undo []func()
}

type journalKey struct{}

func (s *Store) shopLock(shopID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[shopID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[shopID] = l
	}
	return l
}

// WithinShopLock serializes units of work per shop. When fn fails, every
// mutation it made through the store is undone.
func (s *Store) WithinShopLock(ctx context.Context, shopID string, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	l := s.shopLock(shopID)
	l.Lock()
	defer l.Unlock()

	s.commitMu.RLock()
	defer s.commitMu.RUnlock()

	if _, err := s.liveShop(shopID); err != nil {
		return err
	}

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// committedView blocks until no unit of work is in progress. Reads made from
// inside a unit see its own writes and skip the wait.
func (s *Store) committedView(ctx context.Context) func() {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return func() {}
	}
	s.commitMu.Lock()
	return s.commitMu.Unlock
}

// record registers an undo step. Must be called with s.mu held.
func record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

func (s *Store) liveShop(shopID string) (*shopRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return nil, domain.ErrShopNotFound
	}
	return rec, nil
}

// ShopRepository

func (s *Store) GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return nil, domain.ErrShopNotFound
	}
	return copyShop(rec.shop), nil
}

func (s *Store) GetShops(ctx context.Context, page, limit int) ([]*domain.Shop, int64, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]*domain.Shop, 0, len(s.shops))
	for _, rec := range s.shops {
		if rec.deleted {
			continue
		}
		shops = append(shops, copyShop(rec.shop))
	}
	sort.Slice(shops, func(i, j int) bool {
		if !shops[i].CreatedAt.Equal(shops[j].CreatedAt) {
			return shops[i].CreatedAt.After(shops[j].CreatedAt)
		}
		return shops[i].ID > shops[j].ID
	})

	total := int64(len(shops))
	return paginate(shops, page, limit), total, nil
}

func (s *Store) UpdateWithdrawMethod(ctx context.Context, shopID string, method *domain.WithdrawMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return domain.ErrShopNotFound
	}
	prevMethod, prevUpdated := rec.shop.WithdrawMethod, rec.shop.UpdatedAt
	if method != nil {
		m := *method
		method = &m
	}
	rec.shop.WithdrawMethod = method
	rec.shop.UpdatedAt = time.Now().UTC()
	record(ctx, func() {
		rec.shop.WithdrawMethod, rec.shop.UpdatedAt = prevMethod, prevUpdated
	})
	return nil
}

func (s *Store) GetShopTransactions(ctx context.Context, shopID string) ([]domain.Transaction, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.shops[shopID]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	out := make([]domain.Transaction, len(rec.transactions))
	copy(out, rec.transactions)
	return out, nil
}

func (s *Store) DeleteShop(ctx context.Context, shopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return domain.ErrShopNotFound
	}
	rec.deleted = true
	record(ctx, func() { rec.deleted = false })
	return nil
}

// BalanceRepository

func (s *Store) Debit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return decimal.Zero, domain.ErrShopNotFound
	}
	if rec.shop.AvailableBalance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientBalance
	}
	prev := rec.shop.AvailableBalance
	rec.shop.AvailableBalance = prev.Sub(amount)
	record(ctx, func() { rec.shop.AvailableBalance = rec.shop.AvailableBalance.Add(amount) })
	return rec.shop.AvailableBalance, nil
}

func (s *Store) Credit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shopID]
	if !ok || rec.deleted {
		return decimal.Zero, domain.ErrShopNotFound
	}
	rec.shop.AvailableBalance = rec.shop.AvailableBalance.Add(amount)
	record(ctx, func() { rec.shop.AvailableBalance = rec.shop.AvailableBalance.Sub(amount) })
	return rec.shop.AvailableBalance, nil
}

func (s *Store) AppendTransaction(ctx context.Context, shopID string, tx domain.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shops[shopID]
	if !ok {
		return false, domain.ErrShopNotFound
	}
	for _, existing := range rec.transactions {
		if existing.WithdrawalID == tx.WithdrawalID && existing.Status == tx.Status {
			return false, nil
		}
	}
	rec.transactions = append(rec.transactions, tx)
	n := len(rec.transactions)
	record(ctx, func() { rec.transactions = rec.transactions[:n-1] })
	return true, nil
}

// WithdrawalRepository

func (s *Store) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := *withdrawal
	s.withdrawals[w.ID] = &w
	record(ctx, func() { delete(s.withdrawals, w.ID) })
	return nil
}

func (s *Store) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.withdrawals[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	out := *w
	return &out, nil
}

func (s *Store) GetWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]*domain.Withdrawal, int64, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Withdrawal, 0, len(s.withdrawals))
	for _, w := range s.withdrawals {
		if filter.ShopID != nil && w.ShopID != *filter.ShopID {
			continue
		}
		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}
		c := *w
		out = append(out, &c)
	}

	asc := filter.SortOrder == "asc"
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var cmp int
		switch filter.SortBy {
		case "amount":
			cmp = a.Amount.Cmp(b.Amount)
		case "updated_at":
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			if a.ID < b.ID {
				cmp = -1
			} else if a.ID > b.ID {
				cmp = 1
			}
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})

	total := int64(len(out))
	return paginate(out, filter.Page, filter.Limit), total, nil
}

func (s *Store) UpdateWithdrawalStatus(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.withdrawals[withdrawalID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	prevStatus, prevUpdated := w.Status, w.UpdatedAt
	w.Status, w.UpdatedAt = status, updatedAt
	record(ctx, func() { w.Status, w.UpdatedAt = prevStatus, prevUpdated })
	return nil
}

func (s *Store) FindUnrecordedWithdrawals(ctx context.Context, limit int) ([]*domain.Withdrawal, error) {
	defer s.committedView(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Withdrawal
	for _, w := range s.withdrawals {
		if !w.Status.IsTerminal() {
			continue
		}
		rec, ok := s.shops[w.ShopID]
		if !ok || rec.deleted {
			continue
		}
		if !hasEntry(rec.transactions, w.ID, w.Status) {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func hasEntry(txs []domain.Transaction, withdrawalID string, status domain.WithdrawalStatus) bool {
	for _, tx := range txs {
		if tx.WithdrawalID == withdrawalID && tx.Status == status {
			return true
		}
	}
	return false
}

func copyShop(shop domain.Shop) *domain.Shop {
	if shop.WithdrawMethod != nil {
		m := *shop.WithdrawMethod
		shop.WithdrawMethod = &m
	}
	return &shop
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
