package infra

// pdf.go — closing-report generation using go-pdf/fpdf.
// One A5 page per shift close: opening data, per-method sale totals, outflow
// total, both balances, counted cash and the resulting difference.
// The output file is saved to storagePath/cierre_{fecha}_{periodo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReporteCierre carries everything the PDF (and the closing email) needs.
// It is assembled at close time so the renderer never touches the database.
type ReporteCierre struct {
	TurnoID         string                     `json:"turno_id"`
	Fecha           string                     `json:"fecha"`
	Periodo         string                     `json:"periodo"`
	MontoInicial    decimal.Decimal            `json:"monto_inicial"`
	PorMetodo       map[string]decimal.Decimal `json:"por_metodo"`
	TotalEgresos    decimal.Decimal            `json:"total_egresos"`
	SaldoEfectivo   decimal.Decimal            `json:"saldo_efectivo"`
	SaldoTotal      decimal.Decimal            `json:"saldo_total"`
	EfectivoContado decimal.Decimal            `json:"efectivo_contado"`
	Diferencia      decimal.Decimal            `json:"diferencia"`
	CantMovimientos int                        `json:"cant_movimientos"`
}

// GenerateCierrePDF renders the closing summary and returns the file path.
func GenerateCierrePDF(rep *ReporteCierre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s_%s.pdf", rep.Fecha, rep.Periodo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s — turno %s", rep.Fecha, rep.Periodo), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	col1 := contentW * 0.62
	col2 := contentW * 0.38

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, value, "", 1, "R", false, 0, "")
	}

	row("Monto inicial:", "$"+rep.MontoInicial.StringFixed(2), false)
	pdf.Ln(1)

	// ── Ventas por método ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Ventas por método de pago", "B", 1, "L", false, 0, "")
	for _, metodo := range []string{"efectivo", "transferencia", "billetera", "debito", "credito", "otro"} {
		monto, ok := rep.PorMetodo[metodo]
		if !ok || monto.IsZero() {
			continue
		}
		row("  "+metodo, "$"+monto.StringFixed(2), false)
	}
	row("Egresos:", "-$"+rep.TotalEgresos.StringFixed(2), false)
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Saldos ───────────────────────────────────────────────────────────────
	row("Saldo efectivo:", "$"+rep.SaldoEfectivo.StringFixed(2), true)
	row("Saldo total:", "$"+rep.SaldoTotal.StringFixed(2), true)
	row("Efectivo contado:", "$"+rep.EfectivoContado.StringFixed(2), false)
	row("Diferencia:", "$"+rep.Diferencia.StringFixed(2), true)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d movimientos registrados", rep.CantMovimientos), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
