package repositories

import (
	"context"
	"sync"
	"time"

	"ledgerpay/internal/models"
)

// inMemoryLedger is a concurrency-safe in-memory LedgerRepository. It backs
// the unit tests and local development without a Postgres instance.
// Transactions run serialized under one mutex against a copy of the state, so
// a failed closure leaves nothing behind and concurrent money movements
// observe committed balances only.
type inMemoryLedger struct {
	mu    sync.Mutex
	state *memState
}

type memState struct {
	users         map[uint]*models.User
	payments      map[uint]*models.Payment
	paymentsByRef map[string]uint
	transactions  []*models.Transaction
	nextUserID    uint
	nextPaymentID uint
	nextTxID      uint
}

// NewInMemoryLedger creates an empty in-memory ledger store.
func NewInMemoryLedger() LedgerRepository {
	return &inMemoryLedger{state: &memState{
		users:         make(map[uint]*models.User),
		payments:      make(map[uint]*models.Payment),
		paymentsByRef: make(map[string]uint),
		nextUserID:    1,
		nextPaymentID: 1,
		nextTxID:      1,
	}}
}

func (l *inMemoryLedger) GetUser(_ context.Context, id uint) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.getUser(id)
}

func (l *inMemoryLedger) GetUserForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return l.GetUser(ctx, id)
}

func (l *inMemoryLedger) SaveUser(_ context.Context, user *models.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.saveUser(user)
	return nil
}

func (l *inMemoryLedger) GetPaymentByID(_ context.Context, id uint) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.getPayment(id)
}

func (l *inMemoryLedger) GetPaymentByReference(_ context.Context, reference string) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.getPaymentByRef(reference)
}

func (l *inMemoryLedger) SavePayment(_ context.Context, payment *models.Payment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.savePayment(payment)
	return nil
}

func (l *inMemoryLedger) GetLastTransaction(_ context.Context, userID uint) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.lastTransaction(userID), nil
}

func (l *inMemoryLedger) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.saveTransaction(tx)
	return nil
}

func (l *inMemoryLedger) GetTransactionsForUser(_ context.Context, userID uint) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.transactionsForUser(userID), nil
}

func (l *inMemoryLedger) ExecuteInTransaction(_ context.Context, fn func(LedgerRepository) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	scratch := l.state.clone()
	if err := fn(&memTx{state: scratch}); err != nil {
		return err
	}
	l.state = scratch
	return nil
}

// memTx is the transactional view handed to ExecuteInTransaction closures.
// The enclosing ledger mutex is already held, so it operates lock-free on the
// scratch state.
type memTx struct {
	state *memState
}

func (t *memTx) GetUser(_ context.Context, id uint) (*models.User, error) {
	return t.state.getUser(id)
}

func (t *memTx) GetUserForUpdate(_ context.Context, id uint) (*models.User, error) {
	return t.state.getUser(id)
}

func (t *memTx) SaveUser(_ context.Context, user *models.User) error {
	t.state.saveUser(user)
	return nil
}

func (t *memTx) GetPaymentByID(_ context.Context, id uint) (*models.Payment, error) {
	return t.state.getPayment(id)
}

func (t *memTx) GetPaymentByReference(_ context.Context, reference string) (*models.Payment, error) {
	return t.state.getPaymentByRef(reference)
}

func (t *memTx) SavePayment(_ context.Context, payment *models.Payment) error {
	t.state.savePayment(payment)
	return nil
}

func (t *memTx) GetLastTransaction(_ context.Context, userID uint) (*models.Transaction, error) {
	return t.state.lastTransaction(userID), nil
}

func (t *memTx) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	t.state.saveTransaction(tx)
	return nil
}

func (t *memTx) GetTransactionsForUser(_ context.Context, userID uint) ([]models.Transaction, error) {
	return t.state.transactionsForUser(userID), nil
}

func (t *memTx) ExecuteInTransaction(_ context.Context, fn func(LedgerRepository) error) error {
	// Already inside a transaction; joins the enclosing one.
	return fn(t)
}

// State helpers. All return copies so callers never alias stored records.

func (s *memState) getUser(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memState) saveUser(user *models.User) {
	if user.ID == 0 {
		user.ID = s.nextUserID
		s.nextUserID++
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	copied := *user
	s.users[copied.ID] = &copied
}

func (s *memState) getPayment(id uint) (*models.Payment, error) {
	payment, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (s *memState) getPaymentByRef(reference string) (*models.Payment, error) {
	id, ok := s.paymentsByRef[reference]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return s.getPayment(id)
}

func (s *memState) savePayment(payment *models.Payment) {
	if payment.ID == 0 {
		payment.ID = s.nextPaymentID
		s.nextPaymentID++
		payment.CreatedAt = time.Now()
	}
	payment.UpdatedAt = time.Now()
	copied := *payment
	s.payments[copied.ID] = &copied
	s.paymentsByRef[copied.Reference] = copied.ID
}

func (s *memState) saveTransaction(tx *models.Transaction) {
	if tx.ID == 0 {
		tx.ID = s.nextTxID
		s.nextTxID++
		tx.CreatedAt = time.Now()
	}
	tx.UpdatedAt = time.Now()
	copied := *tx
	copied.Sender = nil
	copied.Receiver = nil
	s.transactions = append(s.transactions, &copied)
}

func (s *memState) lastTransaction(userID uint) *models.Transaction {
	// Transactions are appended in creation order; walk backwards.
	for i := len(s.transactions) - 1; i >= 0; i-- {
		tx := s.transactions[i]
		if tx.SenderID == userID || tx.ReceiverID == userID {
			copied := *tx
			return &copied
		}
	}
	return nil
}

func (s *memState) transactionsForUser(userID uint) []models.Transaction {
	var out []models.Transaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		tx := s.transactions[i]
		if tx.SenderID != userID && tx.ReceiverID != userID {
			continue
		}
		copied := *tx
		if sender, ok := s.users[tx.SenderID]; ok {
			senderCopy := *sender
			copied.Sender = &senderCopy
		}
		if receiver, ok := s.users[tx.ReceiverID]; ok {
			receiverCopy := *receiver
			copied.Receiver = &receiverCopy
		}
		out = append(out, copied)
	}
	return out
}

func (s *memState) clone() *memState {
	next := &memState{
		users:         make(map[uint]*models.User, len(s.users)),
		payments:      make(map[uint]*models.Payment, len(s.payments)),
		paymentsByRef: make(map[string]uint, len(s.paymentsByRef)),
		transactions:  make([]*models.Transaction, len(s.transactions)),
		nextUserID:    s.nextUserID,
		nextPaymentID: s.nextPaymentID,
		nextTxID:      s.nextTxID,
	}
	for id, user := range s.users {
		copied := *user
		next.users[id] = &copied
	}
	for id, payment := range s.payments {
		copied := *payment
		next.payments[id] = &copied
	}
	for ref, id := range s.paymentsByRef {
		next.paymentsByRef[ref] = id
	}
	for i, tx := range s.transactions {
		copied := *tx
		next.transactions[i] = &copied
	}
	return next
}
