package store

import (
	"fmt"

	"github.com/finbook-dev/finbook/internal/model"
)

// Accessors and raw mutators for the collections whose records own
// linked transactions. Validation and transaction lockstep for these
// live in the linkage layer; the store only moves records in and out of
// the document. MintID exposes id minting so the linkage layer stamps
// ids the same way the store does.

// MintID returns a fresh record id.
func (s *Store) MintID() string {
	return newID()
}

// Bills returns a copy of the bill collection.
func (s *Store) Bills() []model.Bill {
	out := make([]model.Bill, len(s.doc.Bills))
	copy(out, s.doc.Bills)
	return out
}

// BillByID looks up a bill.
func (s *Store) BillByID(id string) (model.Bill, bool) {
	for _, b := range s.doc.Bills {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bill{}, false
}

// AppendBill adds a bill record as-is.
func (s *Store) AppendBill(b model.Bill) {
	s.doc.Bills = append(s.doc.Bills, b)
	s.notify()
}

// SetBill replaces a bill in place.
func (s *Store) SetBill(b model.Bill) error {
	for i := range s.doc.Bills {
		if s.doc.Bills[i].ID == b.ID {
			s.doc.Bills[i] = b
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("bill %s: %w", b.ID, ErrNotFound)
}

// DeleteBill removes a bill.
func (s *Store) DeleteBill(id string) error {
	for i := range s.doc.Bills {
		if s.doc.Bills[i].ID == id {
			s.doc.Bills = append(s.doc.Bills[:i], s.doc.Bills[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("bill %s: %w", id, ErrNotFound)
}

// SavingsGoals returns a copy of the goal collection.
func (s *Store) SavingsGoals() []model.SavingsGoal {
	out := make([]model.SavingsGoal, len(s.doc.SavingsGoals))
	copy(out, s.doc.SavingsGoals)
	return out
}

// SavingsGoalByID looks up a goal.
func (s *Store) SavingsGoalByID(id string) (model.SavingsGoal, bool) {
	for _, g := range s.doc.SavingsGoals {
		if g.ID == id {
			return g, true
		}
	}
	return model.SavingsGoal{}, false
}

// AppendSavingsGoal adds a goal record as-is.
func (s *Store) AppendSavingsGoal(g model.SavingsGoal) {
	s.doc.SavingsGoals = append(s.doc.SavingsGoals, g)
	s.notify()
}

// SetSavingsGoal replaces a goal in place.
func (s *Store) SetSavingsGoal(g model.SavingsGoal) error {
	for i := range s.doc.SavingsGoals {
		if s.doc.SavingsGoals[i].ID == g.ID {
			s.doc.SavingsGoals[i] = g
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("savings goal %s: %w", g.ID, ErrNotFound)
}

// DeleteSavingsGoal removes a goal.
func (s *Store) DeleteSavingsGoal(id string) error {
	for i := range s.doc.SavingsGoals {
		if s.doc.SavingsGoals[i].ID == id {
			s.doc.SavingsGoals = append(s.doc.SavingsGoals[:i], s.doc.SavingsGoals[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("savings goal %s: %w", id, ErrNotFound)
}

// SavingsRecords returns a copy of the deposit collection.
func (s *Store) SavingsRecords() []model.SavingsRecord {
	out := make([]model.SavingsRecord, len(s.doc.SavingsRecords))
	copy(out, s.doc.SavingsRecords)
	return out
}

// SavingsRecordByID looks up a deposit record.
func (s *Store) SavingsRecordByID(id string) (model.SavingsRecord, bool) {
	for _, r := range s.doc.SavingsRecords {
		if r.ID == id {
			return r, true
		}
	}
	return model.SavingsRecord{}, false
}

// SavingsRecordsForGoal returns the deposits referencing one goal.
func (s *Store) SavingsRecordsForGoal(goalID string) []model.SavingsRecord {
	var out []model.SavingsRecord
	for _, r := range s.doc.SavingsRecords {
		if r.GoalID == goalID {
			out = append(out, r)
		}
	}
	return out
}

// AppendSavingsRecord adds a deposit record as-is.
func (s *Store) AppendSavingsRecord(r model.SavingsRecord) {
	s.doc.SavingsRecords = append(s.doc.SavingsRecords, r)
	s.notify()
}

// SetSavingsRecord replaces a deposit record in place.
func (s *Store) SetSavingsRecord(r model.SavingsRecord) error {
	for i := range s.doc.SavingsRecords {
		if s.doc.SavingsRecords[i].ID == r.ID {
			s.doc.SavingsRecords[i] = r
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("savings record %s: %w", r.ID, ErrNotFound)
}

// DeleteSavingsRecord removes a deposit record.
func (s *Store) DeleteSavingsRecord(id string) error {
	for i := range s.doc.SavingsRecords {
		if s.doc.SavingsRecords[i].ID == id {
			s.doc.SavingsRecords = append(s.doc.SavingsRecords[:i], s.doc.SavingsRecords[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("savings record %s: %w", id, ErrNotFound)
}

// BettingRecords returns a copy of the betting ledger.
func (s *Store) BettingRecords() []model.BettingRecord {
	out := make([]model.BettingRecord, len(s.doc.BettingRecords))
	copy(out, s.doc.BettingRecords)
	return out
}

// BettingRecordByID looks up a betting record.
func (s *Store) BettingRecordByID(id string) (model.BettingRecord, bool) {
	for _, r := range s.doc.BettingRecords {
		if r.ID == id {
			return r, true
		}
	}
	return model.BettingRecord{}, false
}

// AppendBettingRecord adds a betting record as-is.
func (s *Store) AppendBettingRecord(r model.BettingRecord) {
	s.doc.BettingRecords = append(s.doc.BettingRecords, r)
	s.notify()
}

// SetBettingRecord replaces a betting record in place.
func (s *Store) SetBettingRecord(r model.BettingRecord) error {
	for i := range s.doc.BettingRecords {
		if s.doc.BettingRecords[i].ID == r.ID {
			s.doc.BettingRecords[i] = r
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("betting record %s: %w", r.ID, ErrNotFound)
}

// DeleteBettingRecord removes a betting record.
func (s *Store) DeleteBettingRecord(id string) error {
	for i := range s.doc.BettingRecords {
		if s.doc.BettingRecords[i].ID == id {
			s.doc.BettingRecords = append(s.doc.BettingRecords[:i], s.doc.BettingRecords[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("betting record %s: %w", id, ErrNotFound)
}
