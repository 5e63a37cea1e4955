package debt

import (
	"time"

	"github.com/google/uuid"
)

// Type is the direction of a debt from the user's point of view.
type Type string

const (
	TypeOwedToYou Type = "owed_to_you"
	TypeOwedByYou Type = "owed_by_you"
)

func (t Type) Valid() bool {
	return t == TypeOwedToYou || t == TypeOwedByYou
}

// Sign is the wallet direction of a payment on a debt of this type.
func (t Type) Sign() int64 {
	if t == TypeOwedByYou {
		return -1
	}

	return 1
}

type Status string

const (
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusDefaulted Status = "defaulted"
)

type Debt struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            Type
	TotalAmount     int64
	RemainingAmount int64
	InterestRate    *float64
	DueDate         *time.Time
	Notes           string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Payment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	DebtID        uuid.UUID
	Amount        int64
	Date          time.Time
	TransactionID *uuid.UUID
	Notes         string
}

// Pay reduces the remaining amount, never below zero, and marks the debt
// paid once nothing remains.
func (d *Debt) Pay(amount int64) {
	d.RemainingAmount = max(0, d.RemainingAmount-amount)

	d.Status = StatusActive
	if d.RemainingAmount == 0 {
		d.Status = StatusPaid
	}
}

// SetTotal changes the principal and shifts the remaining amount by the
// same delta. A settled debt reopens when something remains again.
func (d *Debt) SetTotal(total int64) {
	delta := total - d.TotalAmount
	d.TotalAmount = total
	d.RemainingAmount = max(0, d.RemainingAmount+delta)

	switch {
	case d.RemainingAmount == 0:
		d.Status = StatusPaid
	case d.Status == StatusPaid:
		d.Status = StatusActive
	}
}

type Summary struct {
	ActiveCount    int
	TotalOwedToYou int64
	TotalOwedByYou int64
}

// Summarize totals what is still outstanding on active debts.
func Summarize(debts []*Debt) Summary {
	var s Summary

	for _, d := range debts {
		if d.Status != StatusActive {
			continue
		}

		s.ActiveCount++

		switch d.Type {
		case TypeOwedToYou:
			s.TotalOwedToYou += d.RemainingAmount
		case TypeOwedByYou:
			s.TotalOwedByYou += d.RemainingAmount
		}
	}

	return s
}
