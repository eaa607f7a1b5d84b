package invoice

import (
	"bytes"
	"testing"
)

func TestBuildPDF(t *testing.T) {
	doc := Document{
		BankName:    "HBL",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
		GeneratedAt: "2026-03-01 09:00",
		Lines: []Line{
			{OrderNumber: "BO-1001", CustomerName: "Ali", Product: "Phone", OrderDate: "2026-02-03", Status: "dispatched", Amount: 52000},
			{OrderNumber: "BO-1002", CustomerName: "Sana", Product: "Watch", OrderDate: "2026-02-10", Status: "cancelled", Amount: 0},
		},
		TotalAmount: 52000,
	}

	data, err := BuildPDF(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
}

func TestBuildPDFRequiresBank(t *testing.T) {
	if _, err := BuildPDF(Document{}); err == nil {
		t.Fatalf("expected error for missing bank name")
	}
}

func TestBillableTotalSkipsCancelled(t *testing.T) {
	doc := Document{Lines: []Line{
		{Status: "dispatched", Amount: 100},
		{Status: "cancelled", Amount: 40},
		{Status: "dispatched", Amount: 50},
	}}
	if got := doc.BillableTotal(); got != 150 {
		t.Fatalf("billable total = %v", got)
	}
}

func TestArchivePrefix(t *testing.T) {
	if got := ArchivePrefix("Bank Alfalah Ltd."); got != "invoices/bank_alfalah_ltd/" {
		t.Fatalf("prefix = %q", got)
	}
	if got := ArchivePrefix("***"); got != "invoices/bank/" {
		t.Fatalf("empty sanitized bank must fall back, got %q", got)
	}
	// Every generated key must live under its bank's prefix so archive
	// listings by prefix find it.
	prefix := ArchivePrefix("HBL")
	key := ObjectKey("HBL", "2026-02-01", "2026-02-28")
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		t.Fatalf("key %q not under prefix %q", key, prefix)
	}
}

func TestObjectKey(t *testing.T) {
	got := ObjectKey("Bank Alfalah Ltd.", "2026-02-01", "2026-02-28")
	want := "invoices/bank_alfalah_ltd/2026-02-01_2026-02-28.pdf"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
	if ObjectKey("***", "a", "b") != "invoices/bank/a_b.pdf" {
		t.Fatalf("empty sanitized bank must fall back")
	}
}
