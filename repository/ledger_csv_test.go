package repository

import (
	"errors"
	"testing"

	"savingsTracker/models"
)

func TestEncodeLedgerCSV_Layout(t *testing.T) {
	data, err := EncodeLedgerCSV([]models.Deposit{
		dep("2024-05-01 09:00", "alice", 50000, models.NoteCash),
		dep("2024-05-01 10:00", "bob", 20000, models.NoteTransfer),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "Tanggal,User,Jumlah (Rp),Keterangan\n" +
		"2024-05-01 09:00,alice,50000,Cash\n" +
		"2024-05-01 10:00,bob,20000,Transfer (TF)\n"
	if string(data) != want {
		t.Fatalf("encoded ledger:\n%s\nwant:\n%s", data, want)
	}

	empty, err := EncodeLedgerCSV(nil)
	if err != nil || string(empty) != "Tanggal,User,Jumlah (Rp),Keterangan\n" {
		t.Fatalf("empty ledger encodes to %q, %v", empty, err)
	}
}

func TestDecodeLedgerCSV(t *testing.T) {
	got, err := DecodeLedgerCSV([]byte("\xef\xbb\xbfTanggal,User,Jumlah (Rp),Keterangan\r\n2024-05-01 09:00,alice,50000.0,Cash\r\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 50000 || got[0].User != "alice" || got[0].Position != 0 {
		t.Fatalf("unexpected decode: %+v", got)
	}

	for name, in := range map[string]string{
		"wrong header":   "Date,User,Amount,Note\n",
		"missing column": "Tanggal,User,Jumlah (Rp),Keterangan\n2024-05-01 09:00,alice,50000\n",
		"bad amount":     "Tanggal,User,Jumlah (Rp),Keterangan\n2024-05-01 09:00,alice,12.5,Cash\n",
	} {
		if _, err := DecodeLedgerCSV([]byte(in)); !errors.Is(err, ErrStorageUnavailable) {
			t.Fatalf("%s: err = %v, want ErrStorageUnavailable", name, err)
		}
	}

	empty, err := DecodeLedgerCSV(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty input: %+v %v", empty, err)
	}
}

func TestLedgerFilter(t *testing.T) {
	all := []models.Deposit{
		{Position: 0, Timestamp: "2024-04-30 23:59", User: "alice", Amount: 10000},
		{Position: 1, Timestamp: "2024-05-01 00:00", User: "bob", Amount: 20000},
		{Position: 2, Timestamp: "2024-05-01 18:45", User: "alice", Amount: 30000},
		{Position: 3, Timestamp: "2024-05-02 07:00", User: "alice", Amount: 40000},
	}

	got := FilterDeposits(all, LedgerFilter{User: "alice", From: "2024-05-01", To: "2024-05-01"})
	if len(got) != 1 || got[0].Position != 2 {
		t.Fatalf("filtered = %+v, want only position 2", got)
	}
	if n := len(FilterDeposits(all, LedgerFilter{})); n != 4 {
		t.Fatalf("zero filter kept %d records", n)
	}
	if SumDeposits(all) != 100000 {
		t.Fatalf("sum = %d", SumDeposits(all))
	}
	rev := ReverseDeposits(all)
	if rev[0].Position != 3 || rev[3].Position != 0 || all[0].Position != 0 {
		t.Fatalf("reverse should be newest first and leave input intact: %+v", rev)
	}
}

func TestDecodeLedgerCSV_AmountOutOfRange(t *testing.T) {
	for _, amount := range []string{"1e30", "-1e30", "9223372036854775808.0"} {
		in := "Tanggal,User,Jumlah (Rp),Keterangan\n2024-05-01 09:00,alice," + amount + ",Cash\n"
		if _, err := DecodeLedgerCSV([]byte(in)); !errors.Is(err, ErrStorageUnavailable) {
			t.Fatalf("amount %s: err = %v, want ErrStorageUnavailable", amount, err)
		}
	}
}
