package invoice

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// Line is one billable order on a bank invoice. Cancelled orders appear with
// a zero amount so the bank sees the full activity for the period.
type Line struct {
	OrderNumber    string
	CustomerName   string
	Product        string
	OrderDate      string
	Status         string
	Courier        string
	TrackingNumber string
	Amount         float64
}

type Document struct {
	BankName    string
	PeriodStart string
	PeriodEnd   string
	GeneratedAt string
	Lines       []Line
	TotalAmount float64
}

func (d Document) BillableTotal() float64 {
	var total float64
	for _, line := range d.Lines {
		if line.Status != "cancelled" {
			total += line.Amount
		}
	}
	return total
}

func BuildPDF(doc Document) ([]byte, error) {
	if strings.TrimSpace(doc.BankName) == "" {
		return nil, fmt.Errorf("bank name is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Invoice - %s", doc.BankName), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Period: %s to %s", doc.PeriodStart, doc.PeriodEnd), "", 1, "C", false, 0, "")
	if doc.GeneratedAt != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", doc.GeneratedAt), "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Orders", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range doc.Lines {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s  %s", line.OrderNumber, line.OrderDate), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s - %s", line.CustomerName, line.Product), "", 1, "L", false, 0, "")
		if line.Status == "cancelled" {
			pdf.CellFormat(0, 5, "  Cancelled", "", 1, "L", false, 0, "")
		} else {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Amount: %.2f", line.Amount), "", 1, "L", false, 0, "")
			if line.Courier != "" {
				pdf.CellFormat(0, 5, fmt.Sprintf("  Shipped via %s (%s)", line.Courier, line.TrackingNumber), "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(1)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %.2f", doc.TotalAmount), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Orders billed: %d", len(doc.Lines)), "", 1, "L", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ArchivePrefix is the object-store prefix holding one bank's generated
// invoices, e.g. invoices/hbl/.
func ArchivePrefix(bankName string) string {
	bank := strings.Trim(filenameRe.ReplaceAllString(strings.ToLower(bankName), "_"), "_")
	if bank == "" {
		bank = "bank"
	}
	return "invoices/" + bank + "/"
}

// ObjectKey builds the archive key for a generated invoice, e.g.
// invoices/hbl/2026-02-01_2026-02-28.pdf.
func ObjectKey(bankName, periodStart, periodEnd string) string {
	return fmt.Sprintf("%s%s_%s.pdf", ArchivePrefix(bankName), periodStart, periodEnd)
}
