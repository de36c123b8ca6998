package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"savingsTracker/models"
)

// LedgerHeader is the exact header row of the ledger CSV file.
var LedgerHeader = []string{"Tanggal", "User", "Jumlah (Rp)", "Keterangan"}

// EncodeLedgerCSV renders deposits as ledger CSV text, header first, in slice order.
func EncodeLedgerCSV(deposits []models.Deposit) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(LedgerHeader); err != nil {
		return nil, err
	}
	for _, d := range deposits {
		row := []string{d.Timestamp, d.User, strconv.FormatInt(d.Amount, 10), d.Note}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeLedgerCSV parses ledger CSV text. Positions are assigned in file order.
// Empty input decodes to an empty ledger; anything malformed wraps ErrStorageUnavailable.
func DecodeLedgerCSV(data []byte) ([]models.Deposit, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	out := []models.Deposit{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(LedgerHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read ledger header: %v", ErrStorageUnavailable, err)
	}
	if !sameHeader(header) {
		return nil, fmt.Errorf("%w: unexpected ledger header %q", ErrStorageUnavailable, strings.Join(header, ","))
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: ledger line %d: %v", ErrStorageUnavailable, line, err)
		}
		amount, err := parseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: ledger line %d: %v", ErrStorageUnavailable, line, err)
		}
		out = append(out, models.Deposit{
			Position:  len(out),
			Timestamp: row[0],
			User:      row[1],
			Amount:    amount,
			Note:      row[3],
		})
	}
	return out, nil
}

func sameHeader(h []string) bool {
	if len(h) != len(LedgerHeader) {
		return false
	}
	for i := range h {
		if strings.TrimSpace(h[i]) != LedgerHeader[i] {
			return false
		}
	}
	return true
}

// parseAmount accepts integer text and integral float text such as "50000.0",
// which is how some spreadsheet tools write whole numbers.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return int64(f), nil
}
