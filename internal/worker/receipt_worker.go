package worker

// Processes receipt jobs from QueueReceipt: loads the sale, renders the PDF
// receipt and, when the customer left an email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitorduarteebb/otica2/internal/infra"
	"github.com/vitorduarteebb/otica2/internal/repository"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID        string `json:"sale_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type ReceiptWorker struct {
	saleRepo     repository.SaleRepository
	dispatcher   *Dispatcher
	storagePath  string
	businessName string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, dispatcher *Dispatcher, storagePath, businessName string) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:     saleRepo,
		dispatcher:   dispatcher,
		storagePath:  storagePath,
		businessName: businessName,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return nil
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("receipt_worker: load sale %s: %w", payload.SaleID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storagePath, w.businessName)
	if err != nil {
		return fmt.Errorf("receipt_worker: generate pdf: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generated")

	if payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.CustomerEmail,
			Subject: fmt.Sprintf("%s - Recibo de compra", w.businessName),
			Body:    fmt.Sprintf("Olá, %s!\n\nSegue em anexo o recibo da sua compra.\nTotal: R$ %s\n\nObrigado pela preferência.", sale.CustomerName, sale.TotalAmount.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", payload.CustomerEmail).Msg("receipt_worker: email job enqueued")
		}
	}
	return nil
}
