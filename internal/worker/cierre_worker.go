package worker

// cierre_worker.go
// Processes closing-report jobs from QueueCierre: renders the summary PDF and
// mails it to the configured admin address. The payload carries every figure
// already computed at close time, so this worker never touches the database.

import (
	"context"
	"encoding/json"
	"fmt"

	"libreria/internal/infra"

	"github.com/rs/zerolog/log"
)

// CierreWorker renders and delivers shift-closing reports.
type CierreWorker struct {
	mailer      *infra.Mailer
	storagePath string
	adminEmail  string
}

func NewCierreWorker(mailer *infra.Mailer, storagePath, adminEmail string) *CierreWorker {
	return &CierreWorker{mailer: mailer, storagePath: storagePath, adminEmail: adminEmail}
}

// Process renders the PDF and, when an admin email is configured, sends it.
func (w *CierreWorker) Process(_ context.Context, raw json.RawMessage) error {
	var rep infra.ReporteCierre
	if err := json.Unmarshal(raw, &rep); err != nil {
		return fmt.Errorf("cierre_worker: invalid payload: %w", err)
	}

	pdfPath, err := infra.GenerateCierrePDF(&rep, w.storagePath)
	if err != nil {
		return fmt.Errorf("cierre_worker: generate pdf: %w", err)
	}
	log.Info().Str("path", pdfPath).Str("turno_id", rep.TurnoID).Msg("cierre_worker: report generated")

	if w.adminEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Cierre de caja %s (%s)", rep.Fecha, rep.Periodo)
	body := fmt.Sprintf(
		"Saldo efectivo: $%s\nSaldo total: $%s\nEfectivo contado: $%s\nDiferencia: $%s\n",
		rep.SaldoEfectivo.StringFixed(2),
		rep.SaldoTotal.StringFixed(2),
		rep.EfectivoContado.StringFixed(2),
		rep.Diferencia.StringFixed(2),
	)
	if err := w.mailer.SendReporteCierre(w.adminEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("cierre_worker: send email: %w", err)
	}
	log.Info().Str("to", w.adminEmail).Msg("cierre_worker: report sent")
	return nil
}
