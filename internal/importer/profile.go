package importer

// amountMode determines how amounts and types are extracted from a row.
type amountMode int

const (
	// amountTyped means an unsigned amount plus an explicit type column.
	amountTyped amountMode = iota
	// amountSigned means one signed column; negative values are expenses.
	amountSigned
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV export. Header
// names are compared case-insensitively.
type Profile struct {
	Name        string
	DateCol     string
	NotesCol    string
	CategoryCol string
	AmountMode  amountMode
	TypeCol     string // amountTyped
	AmountCol   string // amountTyped, amountSigned
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.TypeCol, p.AmountCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "ledger",
		DateCol:     "date",
		NotesCol:    "notes",
		CategoryCol: "category",
		AmountMode:  amountTyped,
		TypeCol:     "type",
		AmountCol:   "amount",
	},
	{
		Name:       "statement-split",
		DateCol:    "date",
		NotesCol:   "description",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:       "statement",
		DateCol:    "date",
		NotesCol:   "description",
		AmountMode: amountSigned,
		AmountCol:  "amount",
	},
}
