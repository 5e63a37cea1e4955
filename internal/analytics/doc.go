// Package analytics derives dashboard figures from a user's ledger.
//
// Every figure is recomputed from a snapshot of wallets, transactions,
// goals and debts fetched at call time. Nothing is stored: the transaction
// history is the only source of truth, and the functions here are pure
// over that snapshot. Calendar boundaries (months, weeks, days) follow the
// location the Service is configured with.
package analytics
