package infra

// pdf.go generates A7-size thermal-style sale receipts with go-pdf/fpdf:
// business name header, sale identifier and timestamp, item table, bold
// total and the payment method. The file is saved under
// storagePath/recibo_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/vitorduarteebb/otica2/internal/model"
)

var paymentLabels = map[string]string{
	model.PaymentDinheiro:      "Dinheiro",
	model.PaymentCartaoCredito: "Cartão de crédito",
	model.PaymentCartaoDebito:  "Cartão de débito",
	model.PaymentPix:           "PIX",
}

// GenerateReceiptPDF renders a PDF receipt for a completed sale.
// storagePath is created if needed; returns the absolute path of the file.
func GenerateReceiptPDF(sale *model.Sale, storagePath, businessName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	shortID := strings.Split(sale.ID.String(), "-")[0]
	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_%s.pdf", sale.ID))

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, businessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Venda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venda %s", shortID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.CustomerName != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+sale.CustomerName, "", 1, "L", false, 0, "")
	}
	if sale.Seller != nil {
		pdf.CellFormat(contentW, 4, "Vendedor: "+sale.Seller.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+sale.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	label := paymentLabels[sale.PaymentMethod]
	if label == "" {
		label = sale.PaymentMethod
	}
	pdf.CellFormat(col1+col2, 4, "Forma de pagamento:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, label, "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Obrigado pela preferência!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
