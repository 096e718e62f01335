// Package linkage keeps domain records and the transaction ledger in
// lockstep. A bill, a savings deposit, and a deposit-type betting record
// each own at most one transaction; creating, editing, or deleting the
// record creates, edits, or deletes its transaction in the same step.
// Caller-visible atomicity comes from validating before any mutation:
// once a mutation starts, the remaining in-memory steps cannot fail.
package linkage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/dateutil"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/savings"
	"github.com/finbook-dev/finbook/internal/store"
)

// Service wires the linked collections to the transaction ledger.
type Service struct {
	store *store.Store
}

// NewService creates a linkage Service over a store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// linkedTx resolves a record's transaction link. A dangling transaction
// id is treated as no link at all.
func (s *Service) linkedTx(transactionID string) (model.Transaction, bool) {
	if transactionID == "" {
		return model.Transaction{}, false
	}
	return s.store.TransactionByID(transactionID)
}

// BillParams is the edit-boundary input for a bill.
type BillParams struct {
	Name     string
	Category model.BillCategory
	Amount   decimal.Decimal
	DueDate  string
}

func (p BillParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: bill name is required", store.ErrInvalid)
	}
	if p.Category != model.BillElectric && p.Category != model.BillWifi {
		return fmt.Errorf("%w: unknown bill category %q", store.ErrInvalid, p.Category)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", store.ErrInvalid)
	}
	if !dateutil.Valid(p.DueDate) {
		return fmt.Errorf("%w: due date %q is not YYYY-MM-DD", store.ErrInvalid, p.DueDate)
	}
	return nil
}

// AddBill creates a bill and its expense transaction together.
func (s *Service) AddBill(p BillParams) (model.Bill, error) {
	if err := p.validate(); err != nil {
		return model.Bill{}, err
	}
	tx, err := s.store.AddTransaction(model.Transaction{
		Type:        model.TypeExpense,
		Category:    model.CategoryBill,
		Amount:      p.Amount,
		Date:        p.DueDate,
		Description: p.Name,
	})
	if err != nil {
		return model.Bill{}, err
	}
	bill := model.Bill{
		ID:            s.store.MintID(),
		Name:          p.Name,
		Category:      p.Category,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		Status:        model.BillUnpaid,
		TransactionID: tx.ID,
	}
	s.store.AppendBill(bill)
	return bill, nil
}

// UpdateBill replaces a bill's fields and pushes amount, date, and name
// through to its transaction. A dangling link is replaced by a fresh
// transaction.
func (s *Service) UpdateBill(bill model.Bill) error {
	old, ok := s.store.BillByID(bill.ID)
	if !ok {
		return fmt.Errorf("bill %s: %w", bill.ID, store.ErrNotFound)
	}
	p := BillParams{Name: bill.Name, Category: bill.Category, Amount: bill.Amount, DueDate: bill.DueDate}
	if err := p.validate(); err != nil {
		return err
	}

	// The stored link is authoritative, not the caller's copy.
	bill.TransactionID = old.TransactionID
	if tx, ok := s.linkedTx(old.TransactionID); ok {
		tx.Amount = bill.Amount
		tx.Date = bill.DueDate
		tx.Description = bill.Name
		if err := s.store.SetTransaction(tx); err != nil {
			return err
		}
	} else {
		tx, err := s.store.AddTransaction(model.Transaction{
			Type:        model.TypeExpense,
			Category:    model.CategoryBill,
			Amount:      bill.Amount,
			Date:        bill.DueDate,
			Description: bill.Name,
		})
		if err != nil {
			return err
		}
		bill.TransactionID = tx.ID
	}
	return s.store.SetBill(bill)
}

// DeleteBill removes a bill and its linked transaction together.
func (s *Service) DeleteBill(id string) error {
	bill, ok := s.store.BillByID(id)
	if !ok {
		return fmt.Errorf("bill %s: %w", id, store.ErrNotFound)
	}
	if err := s.store.DeleteBill(id); err != nil {
		return err
	}
	if _, ok := s.linkedTx(bill.TransactionID); ok {
		return s.store.DeleteTransaction(bill.TransactionID)
	}
	return nil
}

// GoalParams is the edit-boundary input for a savings goal.
type GoalParams struct {
	Name           string
	MonthlyDeposit decimal.Decimal
	Years          int
	ProfitPercent  decimal.Decimal
	Color          string
}

func (p GoalParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: goal name is required", store.ErrInvalid)
	}
	if !p.MonthlyDeposit.IsPositive() {
		return fmt.Errorf("%w: monthly deposit must be positive", store.ErrInvalid)
	}
	if p.Years <= 0 {
		return fmt.Errorf("%w: years must be positive", store.ErrInvalid)
	}
	if p.ProfitPercent.IsNegative() {
		return fmt.Errorf("%w: profit percent must not be negative", store.ErrInvalid)
	}
	return nil
}

// AddGoal creates a savings goal with its projection figures derived
// from the parameters.
func (s *Service) AddGoal(p GoalParams) (model.SavingsGoal, error) {
	if err := p.validate(); err != nil {
		return model.SavingsGoal{}, err
	}
	proj := savings.Project(p.MonthlyDeposit, p.Years, p.ProfitPercent)
	goal := model.SavingsGoal{
		ID:             s.store.MintID(),
		Name:           p.Name,
		MonthlyDeposit: p.MonthlyDeposit,
		Years:          p.Years,
		ProfitPercent:  p.ProfitPercent,
		TargetAmount:   proj.TargetAmount,
		MaturityValue:  proj.MaturityValue,
		CurrentAmount:  decimal.Zero,
		Color:          p.Color,
	}
	s.store.AppendSavingsGoal(goal)
	return goal, nil
}

// UpdateGoal replaces a goal's parameters and re-derives every stored
// derived field, so the persisted figures always equal the projection
// engine's output for the current inputs.
func (s *Service) UpdateGoal(goal model.SavingsGoal) error {
	if _, ok := s.store.SavingsGoalByID(goal.ID); !ok {
		return fmt.Errorf("savings goal %s: %w", goal.ID, store.ErrNotFound)
	}
	p := GoalParams{Name: goal.Name, MonthlyDeposit: goal.MonthlyDeposit, Years: goal.Years, ProfitPercent: goal.ProfitPercent}
	if err := p.validate(); err != nil {
		return err
	}
	proj := savings.Project(goal.MonthlyDeposit, goal.Years, goal.ProfitPercent)
	goal.TargetAmount = proj.TargetAmount
	goal.MaturityValue = proj.MaturityValue
	goal.CurrentAmount = savings.CurrentAmount(goal.ID, s.store.SavingsRecords())
	return s.store.SetSavingsGoal(goal)
}

// DeleteGoal removes a goal and cascades to its deposit records and
// their linked transactions.
func (s *Service) DeleteGoal(id string) error {
	if _, ok := s.store.SavingsGoalByID(id); !ok {
		return fmt.Errorf("savings goal %s: %w", id, store.ErrNotFound)
	}
	for _, rec := range s.store.SavingsRecordsForGoal(id) {
		if err := s.store.DeleteSavingsRecord(rec.ID); err != nil {
			return err
		}
		if _, ok := s.linkedTx(rec.TransactionID); ok {
			if err := s.store.DeleteTransaction(rec.TransactionID); err != nil {
				return err
			}
		}
	}
	return s.store.DeleteSavingsGoal(id)
}

// AddDeposit records a deposit toward a goal, creating its expense
// transaction and refreshing the goal's running total.
func (s *Service) AddDeposit(goalID string, amount decimal.Decimal, date, note string) (model.SavingsRecord, error) {
	goal, ok := s.store.SavingsGoalByID(goalID)
	if !ok {
		return model.SavingsRecord{}, fmt.Errorf("savings goal %s: %w", goalID, store.ErrNotFound)
	}
	tx, err := s.store.AddTransaction(model.Transaction{
		Type:        model.TypeExpense,
		Category:    model.CategoryDPS,
		Amount:      amount,
		Date:        date,
		Description: depositDescription(goal.Name, note),
	})
	if err != nil {
		return model.SavingsRecord{}, err
	}
	rec := model.SavingsRecord{
		ID:            s.store.MintID(),
		GoalID:        goalID,
		Amount:        amount,
		Date:          date,
		Note:          note,
		TransactionID: tx.ID,
	}
	s.store.AppendSavingsRecord(rec)
	s.refreshGoalAmount(goalID)
	return rec, nil
}

// UpdateDeposit replaces a deposit's fields, pushes them through to its
// transaction, and refreshes the affected goal totals. The caller must
// re-run the replay afterwards: an edit anywhere in the sequence
// invalidates every later running balance.
func (s *Service) UpdateDeposit(rec model.SavingsRecord) error {
	old, ok := s.store.SavingsRecordByID(rec.ID)
	if !ok {
		return fmt.Errorf("savings record %s: %w", rec.ID, store.ErrNotFound)
	}
	goalName := ""
	if goal, ok := s.store.SavingsGoalByID(rec.GoalID); ok {
		goalName = goal.Name
	}

	rec.TransactionID = old.TransactionID
	if tx, ok := s.linkedTx(old.TransactionID); ok {
		tx.Amount = rec.Amount
		tx.Date = rec.Date
		tx.Description = depositDescription(goalName, rec.Note)
		if err := s.store.SetTransaction(tx); err != nil {
			return err
		}
	} else {
		tx, err := s.store.AddTransaction(model.Transaction{
			Type:        model.TypeExpense,
			Category:    model.CategoryDPS,
			Amount:      rec.Amount,
			Date:        rec.Date,
			Description: depositDescription(goalName, rec.Note),
		})
		if err != nil {
			return err
		}
		rec.TransactionID = tx.ID
	}
	if err := s.store.SetSavingsRecord(rec); err != nil {
		return err
	}
	s.refreshGoalAmount(old.GoalID)
	if rec.GoalID != old.GoalID {
		s.refreshGoalAmount(rec.GoalID)
	}
	return nil
}

// DeleteDeposit removes a deposit and its transaction and refreshes the
// goal total.
func (s *Service) DeleteDeposit(id string) error {
	rec, ok := s.store.SavingsRecordByID(id)
	if !ok {
		return fmt.Errorf("savings record %s: %w", id, store.ErrNotFound)
	}
	if err := s.store.DeleteSavingsRecord(id); err != nil {
		return err
	}
	if _, ok := s.linkedTx(rec.TransactionID); ok {
		if err := s.store.DeleteTransaction(rec.TransactionID); err != nil {
			return err
		}
	}
	s.refreshGoalAmount(rec.GoalID)
	return nil
}

func (s *Service) refreshGoalAmount(goalID string) {
	goal, ok := s.store.SavingsGoalByID(goalID)
	if !ok {
		return // orphaned records keep their goalId but update nothing
	}
	goal.CurrentAmount = savings.CurrentAmount(goalID, s.store.SavingsRecords())
	_ = s.store.SetSavingsGoal(goal)
}

func depositDescription(goalName, note string) string {
	if note != "" {
		return note
	}
	if goalName != "" {
		return goalName + " deposit"
	}
	return "Savings deposit"
}

// AddBet records a betting-account movement. Deposits create an expense
// transaction; withdrawals move money back and never touch the ledger.
func (s *Service) AddBet(typ model.BettingType, amount decimal.Decimal, date, note string) (model.BettingRecord, error) {
	if typ != model.BetDeposit && typ != model.BetWithdraw {
		return model.BettingRecord{}, fmt.Errorf("%w: unknown betting type %q", store.ErrInvalid, typ)
	}
	if !amount.IsPositive() {
		return model.BettingRecord{}, fmt.Errorf("%w: amount must be positive", store.ErrInvalid)
	}
	if !dateutil.Valid(date) {
		return model.BettingRecord{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", store.ErrInvalid, date)
	}

	rec := model.BettingRecord{
		ID:     s.store.MintID(),
		Type:   typ,
		Amount: amount,
		Date:   date,
		Note:   note,
	}
	if typ == model.BetDeposit {
		tx, err := s.store.AddTransaction(model.Transaction{
			Type:        model.TypeExpense,
			Category:    model.CategoryBetting,
			Amount:      amount,
			Date:        date,
			Description: betDescription(note),
		})
		if err != nil {
			return model.BettingRecord{}, err
		}
		rec.TransactionID = tx.ID
	}
	s.store.AppendBettingRecord(rec)
	return rec, nil
}

// UpdateBet replaces a betting record and reconciles its link across
// type transitions: withdraw-to-deposit creates the missing transaction,
// deposit-to-withdraw deletes the stale one and clears the link.
func (s *Service) UpdateBet(rec model.BettingRecord) error {
	old, ok := s.store.BettingRecordByID(rec.ID)
	if !ok {
		return fmt.Errorf("betting record %s: %w", rec.ID, store.ErrNotFound)
	}
	if rec.Type != model.BetDeposit && rec.Type != model.BetWithdraw {
		return fmt.Errorf("%w: unknown betting type %q", store.ErrInvalid, rec.Type)
	}
	if !rec.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", store.ErrInvalid)
	}
	if !dateutil.Valid(rec.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", store.ErrInvalid, rec.Date)
	}

	rec.TransactionID = old.TransactionID
	tx, linked := s.linkedTx(old.TransactionID)
	switch {
	case rec.Type == model.BetDeposit && linked:
		tx.Amount = rec.Amount
		tx.Date = rec.Date
		tx.Description = betDescription(rec.Note)
		if err := s.store.SetTransaction(tx); err != nil {
			return err
		}
	case rec.Type == model.BetDeposit && !linked:
		created, err := s.store.AddTransaction(model.Transaction{
			Type:        model.TypeExpense,
			Category:    model.CategoryBetting,
			Amount:      rec.Amount,
			Date:        rec.Date,
			Description: betDescription(rec.Note),
		})
		if err != nil {
			return err
		}
		rec.TransactionID = created.ID
	case rec.Type == model.BetWithdraw:
		if linked {
			if err := s.store.DeleteTransaction(tx.ID); err != nil {
				return err
			}
		}
		rec.TransactionID = ""
	}
	return s.store.SetBettingRecord(rec)
}

// DeleteBet removes a betting record and, for deposits, its transaction.
func (s *Service) DeleteBet(id string) error {
	rec, ok := s.store.BettingRecordByID(id)
	if !ok {
		return fmt.Errorf("betting record %s: %w", id, store.ErrNotFound)
	}
	if err := s.store.DeleteBettingRecord(id); err != nil {
		return err
	}
	if _, ok := s.linkedTx(rec.TransactionID); ok {
		return s.store.DeleteTransaction(rec.TransactionID)
	}
	return nil
}

func betDescription(note string) string {
	if note != "" {
		return note
	}
	return "Betting deposit"
}
