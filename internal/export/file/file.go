// Package file writes reports as plain text files on local disk, the
// zero-dependency export target.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grafica/internal/export"
	"grafica/internal/ledger"
)

type Writer struct {
	dir string
	now func() time.Time
}

var _ export.ReportWriter = (*Writer)(nil)

func NewWriter(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("empty export directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// WriteReport renders the document as a text table and writes it to a
// timestamped file. Returns the file path.
func (w *Writer) WriteReport(ctx context.Context, doc ledger.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("relatorio-%s.txt", w.now().Format("20060102-150405"))
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, []byte(Render(doc)), 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}

// Render produces the text body of a report document.
func Render(doc ledger.Document) string {
	var b strings.Builder

	b.WriteString(doc.Title + "\n")
	b.WriteString("Gerado em: " + doc.GeneratedAt + "\n\n")
	b.WriteString("Receita Total:  " + doc.TotalIncome + "\n")
	b.WriteString("Despesa Total:  " + doc.TotalExpense + "\n")
	b.WriteString("Lucro Líquido:  " + doc.NetProfit + "\n\n")

	b.WriteString(fmt.Sprintf("%-10s  %-30s  %-8s  %s\n", "Data", "Descrição", "Status", "Valor"))
	b.WriteString(strings.Repeat("-", 64) + "\n")
	for _, row := range doc.Rows {
		b.WriteString(fmt.Sprintf("%-10s  %-30s  %-8s  %s\n",
			row.Date, truncate(row.Label, 30), row.Settled, row.Amount))
	}

	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
