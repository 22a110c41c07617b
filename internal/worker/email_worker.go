package worker

// Processes email jobs from QueueEmail: sends PDF receipts to customer
// emails via SMTP.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vitorduarteebb/otica2/internal/infra"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email with the PDF receipt as attachment.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	if err := w.mailer.SendReceipt(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: receipt sent")
	return nil
}
