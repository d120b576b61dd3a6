package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"retail-backend/models"
	"retail-backend/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	paymentEntryPrefix  = "ACC-PAY-"
	paymentEntryDocType = "Payment Entry"
)

// ErrRequiredFields is returned when an account or the amount is missing.
var ErrRequiredFields = &ValidationError{Message: "Required fields not provided"}

type PaymentService struct {
	db       *gorm.DB
	settings *SettingsService
	notifier Notifier
	log      *zap.Logger
}

func NewPaymentService(db *gorm.DB, settings *SettingsService, notifier Notifier, log *zap.Logger) *PaymentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PaymentService{db: db, settings: settings, notifier: notifier, log: log}
}

type PaymentInput struct {
	PaidFromAccount string       `json:"paid_from_account"`
	PaidToAccount   string       `json:"paid_to_account"`
	Amount          models.Float `json:"amount"`
	ReferenceNo     string       `json:"reference_no"`
	ReferenceDate   models.Date  `json:"reference_date"`
	Remarks         string       `json:"remarks"`
	Party           string       `json:"party"`
	AgainstInvoice  string       `json:"against_invoice"`
}

func DecodePayment(raw string) (PaymentInput, error) {
	var input PaymentInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return input, validationErrorf("invalid payment data: %v", err)
	}
	return input, nil
}

// Create records and submits a Receive payment. Money moves from the paid
// from account to the paid to account; when an invoice is named, the payment
// is allocated against its outstanding amount.
func (s *PaymentService) Create(ctx context.Context, input PaymentInput, owner string) (*models.PaymentEntry, error) {
	input.PaidFromAccount = strings.TrimSpace(input.PaidFromAccount)
	input.PaidToAccount = strings.TrimSpace(input.PaidToAccount)
	if input.PaidFromAccount == "" || input.PaidToAccount == "" || input.Amount.IsZero() {
		return nil, ErrRequiredFields
	}
	if input.Amount.IsNegative() {
		return nil, validationErrorf("Paid Amount cannot be negative")
	}

	today := models.Today()
	entry := &models.PaymentEntry{
		PaymentType:    models.PaymentTypeReceive,
		PostingDate:    today,
		PaidFrom:       input.PaidFromAccount,
		PaidTo:         input.PaidToAccount,
		PaidAmount:     input.Amount.Decimal,
		ReferenceNo:    input.ReferenceNo,
		ReferenceDate:  input.ReferenceDate,
		Remarks:        input.Remarks,
		Party:          strings.TrimSpace(input.Party),
		AgainstInvoice: strings.TrimSpace(input.AgainstInvoice),
		DocStatus:      models.DocStatusSubmitted,
		Owner:          owner,
	}
	if entry.ReferenceDate.IsZero() {
		entry.ReferenceDate = today
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entry.AgainstInvoice != "" {
			if err := s.allocate(tx, entry); err != nil {
				return err
			}
		}
		if entry.Party != "" {
			exists, err := recordExists(tx, &models.Customer{}, entry.Party)
			if err != nil {
				return err
			}
			if !exists {
				return &NotFoundError{DocType: "Customer", Name: entry.Party}
			}
			entry.PartyType = models.PartyTypeCustomer
		}

		name, err := nextName(tx, fmt.Sprintf("%s%d-", paymentEntryPrefix, today.Year()))
		if err != nil {
			return err
		}
		entry.Name = name

		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("insert payment entry: %w", err)
		}
		return postGL(tx,
			voucher{Type: paymentEntryDocType, No: entry.Name, Date: entry.PostingDate, Remarks: entry.Remarks},
			glPosting{Account: entry.PaidTo, Debit: entry.PaidAmount, Credit: decimal.Zero},
			glPosting{Account: entry.PaidFrom, Party: entry.Party, Debit: decimal.Zero, Credit: entry.PaidAmount},
		)
	})
	if err != nil {
		return nil, err
	}

	if entry.Party != "" {
		s.sendReceipt(ctx, entry)
	}
	return entry, nil
}

// allocate reduces the invoice's outstanding amount by the paid amount,
// capped at what is outstanding. The invoice customer becomes the party.
func (s *PaymentService) allocate(tx *gorm.DB, entry *models.PaymentEntry) error {
	var invoice models.SalesInvoice
	if err := forUpdate(tx).Where("name = ?", entry.AgainstInvoice).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{DocType: "Sales Invoice", Name: entry.AgainstInvoice}
		}
		return err
	}
	if invoice.DocStatus != models.DocStatusSubmitted {
		return validationErrorf("Sales Invoice %s is not submitted", invoice.Name)
	}
	if entry.Party == "" {
		entry.Party = invoice.Customer
	} else if entry.Party != invoice.Customer {
		return validationErrorf("Sales Invoice %s belongs to %s, not %s", invoice.Name, invoice.Customer, entry.Party)
	}
	if !invoice.OutstandingAmount.IsPositive() {
		return validationErrorf("Sales Invoice %s is already paid", invoice.Name)
	}

	allocated := decimal.Min(entry.PaidAmount, invoice.OutstandingAmount)
	outstanding := invoice.OutstandingAmount.Sub(allocated)
	status := models.InvoiceStatusPartlyPaid
	if outstanding.IsZero() {
		status = models.InvoiceStatusPaid
	}
	return tx.Model(&models.SalesInvoice{}).
		Where("name = ?", invoice.Name).
		Updates(map[string]interface{}{
			"outstanding_amount": outstanding,
			"status":             status,
		}).Error
}

func (s *PaymentService) sendReceipt(ctx context.Context, entry *models.PaymentEntry) {
	log := s.log.With(zap.String("payment_entry", entry.Name), zap.String("party", entry.Party))

	mobile, err := s.primaryMobile(ctx, entry.Party)
	if err != nil {
		log.Warn("Failed to look up receipt recipient", zap.Error(err))
		return
	}
	if mobile == "" || !utils.ValidatePhone(mobile) {
		return
	}

	currency, err := s.settings.DefaultCurrency(ctx)
	if err != nil {
		log.Warn("Failed to load default currency", zap.Error(err))
		return
	}
	body := fmt.Sprintf("Payment of %s received. Ref %s. Thank you.", utils.FormatMoney(entry.PaidAmount, currency), entry.Name)
	if err := s.notifier.Send(ctx, mobile, body); err != nil {
		log.Warn("Failed to send payment receipt", zap.Error(err))
		return
	}
	log.Info("Payment receipt sent")
}

func (s *PaymentService) primaryMobile(ctx context.Context, customer string) (string, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).
		Joins("JOIN dynamic_links ON dynamic_links.parent = contacts.name").
		Where("dynamic_links.parent_type = ? AND dynamic_links.link_doctype = ? AND dynamic_links.link_name = ?", "Contact", models.PartyTypeCustomer, customer).
		Where("contacts.is_primary_contact = ?", true).
		Order("contacts.name").
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return contact.MobileNo, nil
}
