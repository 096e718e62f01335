// Package store holds the canonical in-memory document: every collection
// the dashboard works with, behind validated mutation methods. The store
// assumes a single writer (UI events run to completion); it carries no
// locking. Every mutation fires the registered change hooks so the save
// scheduler can debounce a persist.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/dateutil"
	"github.com/finbook-dev/finbook/internal/model"
)

// ErrNotFound is returned when a mutation targets an id that is not in
// the collection.
var ErrNotFound = errors.New("record not found")

// ErrInvalid wraps every edit-boundary validation failure, so callers
// can distinguish "fix your input" from everything else.
var ErrInvalid = errors.New("invalid record")

// Store owns one user's document.
type Store struct {
	doc   model.Document
	hooks []func()
}

// New creates a Store around a loaded document, normalizing absent
// fields to their defaults first.
func New(doc model.Document) *Store {
	doc.Normalize()
	return &Store{doc: doc}
}

// OnChange registers a hook invoked after every successful mutation.
func (s *Store) OnChange(fn func()) {
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify() {
	for _, fn := range s.hooks {
		fn()
	}
}

// Document returns a copy of the current document for serialization.
// The copy shares no slices with the live document, so later mutations
// cannot reach into a snapshot already handed out.
func (s *Store) Document() model.Document {
	return s.doc.Clone()
}

// Preferences returns the persisted UI settings.
func (s *Store) Preferences() model.Preferences {
	return s.doc.Preferences
}

// SetPreferences replaces the persisted UI settings.
func (s *Store) SetPreferences(p model.Preferences) {
	s.doc.Preferences = p
	s.notify()
}

// SavingsPlan returns the stored default plan.
func (s *Store) SavingsPlan() model.SavingsPlan {
	return *s.doc.SavingsPlan
}

// SetSavingsPlan replaces the stored default plan.
func (s *Store) SetSavingsPlan(plan model.SavingsPlan) error {
	if err := validateAmount(plan.MonthlyDeposit); err != nil {
		return err
	}
	if plan.Years <= 0 {
		return fmt.Errorf("%w: years must be positive", ErrInvalid)
	}
	if plan.ProfitPercent.IsNegative() {
		return fmt.Errorf("%w: profit percent must not be negative", ErrInvalid)
	}
	s.doc.SavingsPlan = &plan
	s.notify()
	return nil
}

func newID() string {
	return uuid.NewString()
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	return nil
}

func validateDate(date string) error {
	if !dateutil.Valid(date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, date)
	}
	return nil
}

// Transactions returns a copy of the transaction ledger.
func (s *Store) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(s.doc.Transactions))
	copy(out, s.doc.Transactions)
	return out
}

// TransactionByID looks up a transaction.
func (s *Store) TransactionByID(id string) (model.Transaction, bool) {
	for _, tx := range s.doc.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// AddTransaction validates a draft, mints an id, and appends it to the
// ledger.
func (s *Store) AddTransaction(draft model.Transaction) (model.Transaction, error) {
	if err := validateTransaction(draft); err != nil {
		return model.Transaction{}, err
	}
	draft.ID = newID()
	s.doc.Transactions = append(s.doc.Transactions, draft)
	s.notify()
	return draft, nil
}

// SetTransaction replaces a transaction in place, keeping its id.
func (s *Store) SetTransaction(tx model.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}
	for i := range s.doc.Transactions {
		if s.doc.Transactions[i].ID == tx.ID {
			s.doc.Transactions[i] = tx
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
}

// DeleteTransaction removes a transaction from the ledger.
func (s *Store) DeleteTransaction(id string) error {
	for i := range s.doc.Transactions {
		if s.doc.Transactions[i].ID == id {
			s.doc.Transactions = append(s.doc.Transactions[:i], s.doc.Transactions[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

func validateTransaction(tx model.Transaction) error {
	if tx.Type != model.TypeIncome && tx.Type != model.TypeExpense {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, tx.Type)
	}
	if tx.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if err := validateAmount(tx.Amount); err != nil {
		return err
	}
	return validateDate(tx.Date)
}
