package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching CSV format: expected a header with date, type, amount, category, notes")

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// Parser reads ledger or bank statement CSV files into import rows. Dates
// without a zone are read in the configured calendar.
type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	return &Parser{loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.ImportRow, error) {
	utf8r, _, err := toUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// delimiter picks ';' or ',' by whichever appears more on the first line.
func delimiter(head []byte) rune {
	line, _, _ := strings.Cut(string(head), "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}

	return ','
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a parseable date (blank lines, footers) and
// fails on a dated row whose amount or type is unusable.
func (p *Parser) parseRows(prof *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.ImportRow, error) {
	var out []transaction.ImportRow

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := p.parseDate(cellValue(row, cols, prof.DateCol))
		if !ok {
			continue
		}

		amount, txType, err := parseAmount(prof, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if amount == 0 {
			continue
		}

		out = append(out, transaction.ImportRow{
			Date:     date,
			Type:     txType,
			Amount:   amount,
			Category: cellValue(row, cols, prof.CategoryCol),
			Notes:    cellValue(row, cols, prof.NotesCol),
		})
	}

	return out, nil
}

func (p *Parser) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseAmount(prof *Profile, cols colIndex, row []string) (int64, transaction.Type, error) {
	switch prof.AmountMode {
	case amountTyped:
		txType := transaction.Type(strings.ToLower(cellValue(row, cols, prof.TypeCol)))
		if txType != transaction.TypeIncome && txType != transaction.TypeExpense {
			return 0, "", fmt.Errorf("%w: %q", transaction.ErrInvalidType, txType)
		}

		cents, err := money.Parse(cellValue(row, cols, prof.AmountCol))
		if err != nil {
			return 0, "", err
		}

		return abs(cents), txType, nil
	case amountSigned:
		cents, err := money.Parse(cellValue(row, cols, prof.AmountCol))
		if err != nil {
			return 0, "", err
		}

		if cents < 0 {
			return -cents, transaction.TypeExpense, nil
		}

		return cents, transaction.TypeIncome, nil
	case amountSplit:
		if s := cellValue(row, cols, prof.DebitCol); s != "" {
			cents, err := money.Parse(s)
			if err != nil {
				return 0, "", err
			}

			if cents != 0 {
				return abs(cents), transaction.TypeExpense, nil
			}
		}

		if s := cellValue(row, cols, prof.CreditCol); s != "" {
			cents, err := money.Parse(s)
			if err != nil {
				return 0, "", err
			}

			return abs(cents), transaction.TypeIncome, nil
		}

		return 0, "", nil
	}

	return 0, "", fmt.Errorf("unsupported amount mode %d", prof.AmountMode)
}

// cellValue returns the trimmed cell for column name, or "" when the
// profile has no such column or the row is short.
func cellValue(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
