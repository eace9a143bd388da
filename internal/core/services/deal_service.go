package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/config"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/metrics"
	"github.com/nekorytaylor666/infobuh-sub000/internal/utils/accounting"
)

// dealService bridges deals to journal entries.
type dealService struct {
	BaseService
	txm       portsrepo.TransactionManager
	journal   portssvc.JournalTxSvc
	accounts  config.BridgeAccounts
	documents portssvc.DocumentGenerator
}

// NewDealService creates the deal bridge. documents may be nil, in which case
// no documents are generated.
func NewDealService(
	txm portsrepo.TransactionManager,
	journal portssvc.JournalTxSvc,
	accounts config.BridgeAccounts,
	documents portssvc.DocumentGenerator,
	options ...ServiceOption,
) portssvc.DealBridgeSvc {
	return &dealService{
		BaseService: newBaseService(options),
		txm:         txm,
		journal:     journal,
		accounts:    accounts,
		documents:   documents,
	}
}

var _ portssvc.DealBridgeSvc = (*dealService)(nil)

// bookedLine is one side of a bridge entry, addressed by chart code.
type bookedLine struct {
	code   string
	debit  bool
	amount int64
}

// CreateDealWithAccounting creates the deal and its invoice entry in one
// transaction, then asks the document generator for the deal documents.
func (s *dealService) CreateDealWithAccounting(ctx context.Context, req dto.CreateDealRequest, creatorUserID string) (*domain.BridgeResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	deal := domain.Deal{
		DealID:        uuid.NewString(),
		LegalEntityID: req.LegalEntityID,
		Role:          req.Role,
		ReceiverBIN:   req.ReceiverBIN,
		Reference:     req.Reference,
		Title:         req.Title,
		CurrencyID:    req.CurrencyID,
		TotalAmount:   req.TotalAmount,
		Status:        domain.DealActive,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}

	var result *domain.BridgeResult
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		owner, err := tx.FindLegalEntityByID(ctx, deal.LegalEntityID)
		if err != nil {
			return err
		}
		if owner.BIN == deal.ReceiverBIN {
			return fmt.Errorf("%w: deal counter-party is the owning legal entity", apperrors.ErrValidation)
		}
		if _, err := tx.FindCurrencyByID(ctx, deal.CurrencyID); err != nil {
			return err
		}
		if err := tx.SaveDeal(ctx, deal); err != nil {
			return fmt.Errorf("failed to save deal: %w", err)
		}

		var lines []bookedLine
		if deal.Role == domain.DealRoleSeller {
			lines = []bookedLine{
				{code: s.accounts.Receivable, debit: true, amount: deal.TotalAmount},
				{code: s.accounts.Revenue, amount: deal.TotalAmount},
			}
		} else {
			lines = []bookedLine{
				{code: s.accounts.Expense, debit: true, amount: deal.TotalAmount},
				{code: s.accounts.Payable, amount: deal.TotalAmount},
			}
		}

		result, err = s.book(ctx, tx, bookParams{
			deal:        deal,
			ownBIN:      owner.BIN,
			entryType:   domain.EntryTypeInvoice,
			mirrorTypes: []domain.EntryType{domain.EntryTypeInvoice},
			lines:       lines,
			entryDate:   req.EntryDate,
			description: deal.Title,
			autoPost:    req.AutoPost,
			userID:      creatorUserID,
		})
		return err
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to create deal", slog.String("legal_entity_id", req.LegalEntityID))
		return nil, err
	}

	s.recordOutcome(ctx, domain.EntryTypeInvoice, result)
	result.Document = s.generateDocument(ctx, result.Deal, result.Entry)
	return result, nil
}

// RecordPayment books money received from the counter-party on a seller deal.
func (s *dealService) RecordPayment(ctx context.Context, dealID string, req dto.RecordPaymentRequest, userID string) (*domain.BridgeResult, error) {
	return s.settle(ctx, dealID, req, userID, domain.DealRoleSeller)
}

// RecordExpensePayment books money paid to the counter-party on a buyer deal.
func (s *dealService) RecordExpensePayment(ctx context.Context, dealID string, req dto.RecordPaymentRequest, userID string) (*domain.BridgeResult, error) {
	return s.settle(ctx, dealID, req, userID, domain.DealRoleBuyer)
}

// settle records a payment against a deal. The deal row is locked for the
// whole transaction so the overpayment guard sees the latest paid amount.
func (s *dealService) settle(ctx context.Context, dealID string, req dto.RecordPaymentRequest, userID string, role domain.DealRole) (*domain.BridgeResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var result *domain.BridgeResult
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		deal, err := tx.FindDealForUpdate(ctx, dealID)
		if err != nil {
			return err
		}
		if deal.Role != role {
			return fmt.Errorf("%w: deal %s has role %s", apperrors.ErrValidation, deal.DealID, deal.Role)
		}

		paid, err := accounting.CheckedAdd(deal.PaidAmount, req.Amount)
		if err != nil {
			return err
		}
		if paid > deal.TotalAmount {
			return fmt.Errorf("%w: paid %d + %d exceeds total %d",
				apperrors.ErrOverpayment, deal.PaidAmount, req.Amount, deal.TotalAmount)
		}

		owner, err := tx.FindLegalEntityByID(ctx, deal.LegalEntityID)
		if err != nil {
			return err
		}

		params := bookParams{
			ownBIN:      owner.BIN,
			entryType:   domain.EntryTypePayment,
			mirrorTypes: []domain.EntryType{domain.EntryTypePayment},
			entryDate:   req.PaymentDate,
			description: req.Description,
			autoPost:    req.AutoPost,
			userID:      userID,
		}
		if params.description == "" {
			params.description = "Payment: " + deal.Title
		}

		if role == domain.DealRoleSeller {
			params.lines = []bookedLine{
				{code: s.accounts.Cash, debit: true, amount: req.Amount},
				{code: s.accounts.Receivable, amount: req.Amount},
			}
		} else {
			accrued, err := hasOpenInvoice(ctx, tx, deal.DealID)
			if err != nil {
				return err
			}
			if accrued {
				params.lines = []bookedLine{
					{code: s.accounts.Payable, debit: true, amount: req.Amount},
					{code: s.accounts.Cash, amount: req.Amount},
				}
			} else {
				// Cash basis: the payment is the first booking of the expense,
				// so the counter-party's invoice is the same event.
				params.lines = []bookedLine{
					{code: s.accounts.Expense, debit: true, amount: req.Amount},
					{code: s.accounts.Cash, amount: req.Amount},
				}
				params.mirrorTypes = []domain.EntryType{domain.EntryTypeInvoice, domain.EntryTypePayment}
			}
		}

		deal.ApplyPayment(req.Amount, userID, s.Now())
		params.deal = *deal

		if result, err = s.book(ctx, tx, params); err != nil {
			return err
		}
		return tx.UpdateDealPayment(ctx, *deal)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			metrics.OverpaymentsRejected.Inc()
		}
		s.logWriteError(ctx, err, "Failed to record payment",
			slog.String("deal_id", dealID),
			slog.Int64("amount", req.Amount))
		return nil, err
	}

	s.recordOutcome(ctx, domain.EntryTypePayment, result)
	return result, nil
}

// RecordAccrual books an adjustment between two explicitly named accounts.
// It does not change the paid amount of the deal.
func (s *dealService) RecordAccrual(ctx context.Context, dealID string, req dto.RecordAccrualRequest, userID string) (*domain.BridgeResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var result *domain.BridgeResult
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		deal, err := tx.FindDealForUpdate(ctx, dealID)
		if err != nil {
			return err
		}
		description := req.Description
		if description == "" {
			description = "Accrual: " + deal.Title
		}
		result, err = s.book(ctx, tx, bookParams{
			deal:      *deal,
			entryType: domain.EntryTypeAdjustment,
			lines: []bookedLine{
				{code: req.DebitAccountCode, debit: true, amount: req.Amount},
				{code: req.CreditAccountCode, amount: req.Amount},
			},
			entryDate:   req.EntryDate,
			description: description,
			autoPost:    req.AutoPost,
			userID:      userID,
		})
		return err
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to record accrual", slog.String("deal_id", dealID))
		return nil, err
	}

	s.recordOutcome(ctx, domain.EntryTypeAdjustment, result)
	return result, nil
}

type bookParams struct {
	deal        domain.Deal
	ownBIN      string
	entryType   domain.EntryType
	mirrorTypes []domain.EntryType // nil disables the mirror check
	lines       []bookedLine
	entryDate   time.Time
	description string
	autoPost    bool
	userID      string
}

// book checks for a mirror entry and, unless one exists, creates the journal
// entry for the lines, links it to the deal and optionally posts it.
func (s *dealService) book(ctx context.Context, tx portsrepo.TxStore, p bookParams) (*domain.BridgeResult, error) {
	result := &domain.BridgeResult{Deal: p.deal}

	if p.mirrorTypes != nil {
		match, err := findMirrorEntry(ctx, tx, p.deal, p.ownBIN, p.mirrorTypes, p.lines[0].amount)
		if err != nil {
			return nil, fmt.Errorf("mirror entry check: %w", err)
		}
		if match != nil {
			result.Skipped = true
			result.SkipReason = domain.SkipReasonMirrorEntry
			result.MirrorEntryID = match.JournalEntryID
			return result, nil
		}
	}

	req := dto.CreateJournalEntryRequest{
		LegalEntityID: p.deal.LegalEntityID,
		EntryDate:     p.entryDate,
		CurrencyID:    p.deal.CurrencyID,
		Description:   p.description,
		Reference:     p.deal.Reference,
		Lines:         make([]dto.JournalLineRequest, 0, len(p.lines)),
	}
	for _, l := range p.lines {
		account, err := tx.FindAccountByCode(ctx, p.deal.LegalEntityID, l.code)
		if err != nil {
			return nil, fmt.Errorf("bridge account %s: %w", l.code, err)
		}
		line := dto.JournalLineRequest{AccountID: account.AccountID}
		if l.debit {
			line.DebitAmount = l.amount
		} else {
			line.CreditAmount = l.amount
		}
		req.Lines = append(req.Lines, line)
	}

	entry, err := s.journal.CreateJournalEntryTx(ctx, tx, req, p.userID)
	if err != nil {
		return nil, err
	}

	link := domain.DealJournalEntryLink{
		DealID:         p.deal.DealID,
		JournalEntryID: entry.JournalEntryID,
		EntryType:      p.entryType,
		CreatedAt:      s.Now(),
	}
	if err := tx.SaveDealLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to link journal entry: %w", err)
	}

	if p.autoPost {
		if entry, err = s.journal.PostJournalEntryTx(ctx, tx, entry.JournalEntryID, p.userID); err != nil {
			return nil, err
		}
	}

	result.Entry = entry
	return result, nil
}

// hasOpenInvoice reports whether the deal carries its own non-cancelled invoice entry.
func hasOpenInvoice(ctx context.Context, tx portsrepo.TxReader, dealID string) (bool, error) {
	links, err := tx.ListDealLinks(ctx, dealID)
	if err != nil {
		return false, err
	}
	for _, link := range links {
		if link.EntryType != domain.EntryTypeInvoice {
			continue
		}
		entry, err := tx.FindJournalEntryByID(ctx, link.JournalEntryID)
		if err != nil {
			return false, err
		}
		if entry.Status != domain.Cancelled {
			return true, nil
		}
	}
	return false, nil
}

func (s *dealService) recordOutcome(ctx context.Context, entryType domain.EntryType, result *domain.BridgeResult) {
	if result.Skipped {
		metrics.BridgeEntries.WithLabelValues(string(entryType), metrics.OutcomeSkipped).Inc()
		s.LogInfo(ctx, "Bridge entry skipped",
			slog.String("deal_id", result.Deal.DealID),
			slog.String("entry_type", string(entryType)),
			slog.String("reason", result.SkipReason),
			slog.String("mirror_entry_id", result.MirrorEntryID))
		return
	}

	metrics.BridgeEntries.WithLabelValues(string(entryType), metrics.OutcomeBooked).Inc()
	metrics.JournalEntriesCreated.Inc()
	if result.Entry.Status == domain.Posted {
		metrics.JournalEntriesPosted.Inc()
		metrics.LedgerRowsAppended.Add(float64(len(result.Entry.Lines)))
	}
	s.LogInfo(ctx, "Bridge entry booked",
		slog.String("deal_id", result.Deal.DealID),
		slog.String("entry_type", string(entryType)),
		slog.String("journal_entry_id", result.Entry.JournalEntryID),
		slog.String("status", string(result.Entry.Status)))
}

// generateDocument runs after the accounting transaction has committed. A
// failure is logged and counted but never undoes the deal.
func (s *dealService) generateDocument(ctx context.Context, deal domain.Deal, entry *domain.JournalEntry) *domain.DocumentRef {
	if s.documents == nil {
		return nil
	}
	ref, err := s.documents.GenerateDealDocument(ctx, deal, entry)
	if err != nil {
		err = fmt.Errorf("%w: document generation for deal %s: %v", apperrors.ErrExternal, deal.DealID, err)
		metrics.DocumentFailures.Inc()
		s.LogError(ctx, err, "Deal document generation failed", slog.String("deal_id", deal.DealID))
		return nil
	}
	s.LogInfo(ctx, "Deal document generated",
		slog.String("deal_id", deal.DealID),
		slog.String("document_id", ref.DocumentID))
	return ref
}

func (s *dealService) GetDeal(ctx context.Context, dealID string) (*domain.Deal, error) {
	var deal *domain.Deal
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		deal, err = tx.FindDealByID(ctx, dealID)
		return err
	})
	return deal, err
}

// ListDealEntries returns the deal's linked entries in link order.
func (s *dealService) ListDealEntries(ctx context.Context, dealID string) ([]domain.LinkedEntry, error) {
	var entries []domain.LinkedEntry
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		entries, err = linkedEntries(ctx, tx, dealID)
		return err
	})
	return entries, err
}

func linkedEntries(ctx context.Context, tx portsrepo.TxReader, dealID string) ([]domain.LinkedEntry, error) {
	if _, err := tx.FindDealByID(ctx, dealID); err != nil {
		return nil, err
	}
	links, err := tx.ListDealLinks(ctx, dealID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LinkedEntry, 0, len(links))
	for _, link := range links {
		entry, err := tx.FindJournalEntryByID(ctx, link.JournalEntryID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.LinkedEntry{Link: link, Entry: *entry})
	}
	return out, nil
}

// GenerateReconciliationReport recomputes the payment position of a deal from
// the deal and its linked entries.
func (s *dealService) GenerateReconciliationReport(ctx context.Context, dealID string) (*domain.ReconciliationReport, error) {
	var report *domain.ReconciliationReport
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		deal, err := tx.FindDealByID(ctx, dealID)
		if err != nil {
			return err
		}
		entries, err := linkedEntries(ctx, tx, dealID)
		if err != nil {
			return err
		}
		report = reconcile(*deal, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(report.Flags) > 0 {
		s.LogWarn(ctx, "Deal reconciliation flagged",
			slog.String("deal_id", dealID),
			slog.Any("flags", report.Flags))
	}
	return report, nil
}

func reconcile(deal domain.Deal, entries []domain.LinkedEntry) *domain.ReconciliationReport {
	report := &domain.ReconciliationReport{
		DealID:           deal.DealID,
		Status:           deal.Status,
		TotalAmount:      deal.TotalAmount,
		PaidAmount:       deal.PaidAmount,
		RemainingBalance: deal.RemainingBalance(),
		Flags:            []string{},
	}
	report.IsBalanced = report.RemainingBalance == 0
	if deal.PaidAmount > deal.TotalAmount {
		report.Flags = append(report.Flags, domain.FlagOverpayment)
	}
	if deal.Status == domain.DealCompleted && report.RemainingBalance > 0 {
		report.Flags = append(report.Flags, domain.FlagMissingPayment)
	}

	for _, le := range entries {
		switch le.Entry.Status {
		case domain.Draft:
			report.DraftEntries++
		case domain.Posted:
			report.PostedEntries++
		case domain.Cancelled:
			report.CancelledEntries++
			continue
		}
		switch le.Link.EntryType {
		case domain.EntryTypeInvoice:
			report.InvoicedAmount += le.Entry.TotalDebit
		case domain.EntryTypePayment:
			report.PaymentsBooked += le.Entry.TotalDebit
		}
	}
	return report
}
