package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// WindowStart is how far back a history of this granularity reaches.
func (g Granularity) WindowStart(now time.Time) time.Time {
	switch g {
	case Weekly:
		return now.AddDate(0, 0, -90)
	case Monthly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// key names the bucket t falls in: the day, the Monday starting its week,
// or the month. Keys sort chronologically as strings.
func (g Granularity) key(t time.Time, loc *time.Location) string {
	switch g {
	case Weekly:
		return mondayOf(t, loc).Format(time.DateOnly)
	case Monthly:
		return t.In(loc).Format("2006-01")
	default:
		return t.In(loc).Format(time.DateOnly)
	}
}

type HistoryPoint struct {
	Date    string
	Balance int64
}

type ReplayParams struct {
	Wallets      []*wallet.Wallet
	Transactions []*transaction.Transaction
	// WalletID narrows the series to one wallet. Only entries that move
	// money in or out of it produce points.
	WalletID    *uuid.UUID
	WindowStart time.Time
	Now         time.Time
	Granularity Granularity
	Location    *time.Location
}

// Replay rebuilds balances from zero by applying every entry in time order
// and records, for each bucket inside [WindowStart, Now], the balance after
// the last entry that landed in it. Entries for wallets that no longer
// exist are skipped.
func Replay(p ReplayParams) []HistoryPoint {
	balances := make(map[uuid.UUID]int64, len(p.Wallets))
	for _, w := range p.Wallets {
		balances[w.ID] = 0
	}

	points := make(map[string]int64)

	for _, tx := range byTime(p.Transactions) {
		for _, e := range tx.Effects() {
			if _, ok := balances[e.WalletID]; ok {
				balances[e.WalletID] += e.Delta
			}
		}

		if !within(tx.CreatedAt, p.WindowStart, p.Now) {
			continue
		}

		if p.WalletID != nil && !tx.Touches(*p.WalletID) {
			continue
		}

		points[p.Granularity.key(tx.CreatedAt, p.Location)] = snapshot(balances, p.WalletID)
	}

	series := make([]HistoryPoint, 0, len(points))
	for date, balance := range points {
		series = append(series, HistoryPoint{Date: date, Balance: balance})
	}

	slices.SortFunc(series, func(a, b HistoryPoint) int {
		return cmp.Compare(a.Date, b.Date)
	})

	return series
}

// Balances replays the full history and returns the resulting balance of
// every known wallet.
func Balances(wallets []*wallet.Wallet, txs []*transaction.Transaction) map[uuid.UUID]int64 {
	balances := make(map[uuid.UUID]int64, len(wallets))
	for _, w := range wallets {
		balances[w.ID] = 0
	}

	for _, tx := range byTime(txs) {
		for _, e := range tx.Effects() {
			if _, ok := balances[e.WalletID]; ok {
				balances[e.WalletID] += e.Delta
			}
		}
	}

	return balances
}

func snapshot(balances map[uuid.UUID]int64, walletID *uuid.UUID) int64 {
	if walletID != nil {
		return balances[*walletID]
	}

	var total int64
	for _, b := range balances {
		total += b
	}

	return total
}

// byTime returns a copy of txs sorted by creation time. Entries with equal
// timestamps keep their input order.
func byTime(txs []*transaction.Transaction) []*transaction.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b *transaction.Transaction) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return sorted
}
