package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/currency"
	"github.com/pharmacare/pharmacare-api/pkg/email"
	"github.com/pharmacare/pharmacare-api/pkg/printer"
)

// PrinterService handles receipt formatting, thermal printing and emailed
// receipts.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	branchRepo   repository.BranchRepository
	emailService *email.EmailService
	printerType  string
	currencyCode string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	emailService *email.EmailService,
	printerType string,
	currencyCode string,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		branchRepo:   branchRepo,
		emailService: emailService,
		printerType:  printerType,
		currencyCode: currencyCode,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			PharmacyName: "PRINTER TEST",
			Address:      "Test Address",
			Phone:        "+254 000 000 000",
		},
		InvoiceNo: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Total:    20.00,
		Paid:     20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// BuildSaleReceipt composes a printable receipt from a sale's stored
// snapshot. The branch's receipt header and footer settings are applied
// when available.
func (s *PrinterService) BuildSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			PharmacyName: "PharmaCare",
		},
		InvoiceNo:     sale.InvoiceNo,
		Date:          sale.SaleDate.Format("2006-01-02 15:04"),
		PaymentMethod: sale.PaymentMethod.String(),
		SubTotal:      float64(sale.SubTotal) / 100,
		Tax:           float64(sale.Tax) / 100,
		Discount:      float64(sale.Discount) / 100,
		Total:         float64(sale.Total) / 100,
		Paid:          float64(sale.Paid) / 100,
		Due:           float64(sale.Due) / 100,
		ChangeReturn:  float64(sale.ChangeReturn) / 100,
	}

	if sale.Patient != nil {
		receipt.Patient = sale.Patient.Name
	}

	if branchID, ok := infraRepo.GetBranchID(ctx); ok {
		if settings, err := s.branchRepo.GetSettings(ctx, branchID); err == nil && settings != nil {
			if settings.ReceiptHeader != "" {
				receipt.Header.PharmacyName = settings.ReceiptHeader
			}
			receipt.Footer = settings.ReceiptFooter
		}
	}

	for _, item := range sale.Items {
		receiptItem := entity.ReceiptItem{
			Name:      item.MedicineName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Discount:  float64(item.Discount) / 100,
			Total:     float64(item.Total) / 100,
		}
		if item.BatchNumber != nil {
			receiptItem.BatchNumber = *item.BatchNumber
		}
		receipt.Items = append(receipt.Items, receiptItem)
	}

	return receipt, nil
}

// PrintSaleReceipt fetches a sale (with items) and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildSaleReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// EmailSaleReceipt sends a sale receipt by email. When toEmail is empty the
// patient's registered address is used.
func (s *PrinterService) EmailSaleReceipt(ctx context.Context, saleID uuid.UUID, toEmail string) error {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if toEmail == "" && sale.Patient != nil && sale.Patient.Email != nil {
		toEmail = *sale.Patient.Email
	}
	if toEmail == "" {
		return apperror.NewBadRequestError("No recipient email for this sale")
	}

	data := email.ReceiptEmailData{
		InvoiceNo: sale.InvoiceNo,
		Date:      sale.SaleDate.Format("2006-01-02 15:04"),
		SubTotal:  currency.FormatCents(sale.SubTotal),
		Tax:       currency.FormatCents(sale.Tax),
		Discount:  currency.FormatCents(sale.Discount),
		Total:     currency.FormatCents(sale.Total),
		Paid:      currency.FormatCents(sale.Paid),
		Due:       currency.FormatCents(sale.Due),
		Change:    currency.FormatCents(sale.ChangeReturn),
		Currency:  s.currencyCode,
	}

	if sale.Patient != nil {
		data.PatientName = sale.Patient.Name
	}

	if branchID, ok := infraRepo.GetBranchID(ctx); ok {
		if branch, err := s.branchRepo.GetByID(ctx, branchID); err == nil && branch != nil {
			data.BranchName = branch.Name
		}
	}

	for _, item := range sale.Items {
		data.Lines = append(data.Lines, email.ReceiptEmailLine{
			Name:     item.MedicineName,
			Quantity: item.Quantity,
			Price:    currency.FormatCents(item.UnitPrice),
			Total:    currency.FormatCents(item.Total),
		})
	}

	return s.emailService.SendReceiptEmail(toEmail, data)
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.PharmacyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.LicenseNo != "" {
		doc.TextF("License: %s", r.Header.LicenseNo)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Patient != "" {
		doc.KeyValue("Patient:", r.Patient)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
		if item.BatchNumber != "" {
			doc.TextF("  Batch: %s", item.BatchNumber)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Tax > 0 {
		doc.KeyValue("Tax:", fmt.Sprintf("%.2f", r.Tax))
	}
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.Paid > 0 {
		doc.KeyValue("Paid:", fmt.Sprintf("%.2f", r.Paid))
	}
	if r.Due > 0 {
		doc.KeyValue("Due:", fmt.Sprintf("%.2f", r.Due))
	}
	if r.ChangeReturn > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%.2f", r.ChangeReturn))
	}

	doc.Separator('-')

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Get well soon!"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
