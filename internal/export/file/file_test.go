package file

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"grafica/internal/ledger"
)

func sampleDocument() ledger.Document {
	return ledger.Document{
		Title:        ledger.ReportTitle,
		GeneratedAt:  "01/04/2024",
		TotalIncome:  "R$ 150.00",
		TotalExpense: "R$ 30.00",
		NetProfit:    "R$ 120.00",
		Rows: []ledger.DocumentRow{
			{Date: "12/03/2024", Label: "Papel fotográfico", Settled: "Pago", Amount: "R$ 30.00"},
			{Date: "10/03/2024", Label: "entregue", Settled: "Pago", Amount: "R$ 150.00"},
		},
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.now = func() time.Time { return time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC) }

	path, err := w.WriteReport(context.Background(), sampleDocument())
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.HasSuffix(path, "relatorio-20240401-123000.txt") {
		t.Errorf("unexpected path %q", path)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		ledger.ReportTitle,
		"Gerado em: 01/04/2024",
		"Receita Total:  R$ 150.00",
		"Lucro Líquido:  R$ 120.00",
		"12/03/2024",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteReportCancelledContext(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.WriteReport(ctx, sampleDocument()); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewWriterRejectsEmptyDir(t *testing.T) {
	if _, err := NewWriter("  "); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	doc := sampleDocument()
	doc.Rows[0].Label = strings.Repeat("a", 50)

	text := Render(doc)
	if strings.Contains(text, strings.Repeat("a", 31)) {
		t.Error("label longer than column width was not truncated")
	}
}
