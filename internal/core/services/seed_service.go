package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// SeedChartOfAccounts inserts the rows of a chart dataset. Rows may come in any
// order: each pass creates every row whose parent already exists, and the
// passes repeat until all rows are resolved or a pass makes no progress.
func (s *accountService) SeedChartOfAccounts(ctx context.Context, legalEntityID string, req dto.SeedChartRequest) (*dto.SeedChartResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	for _, row := range req.Rows {
		if !row.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: account %s has unknown type %q", apperrors.ErrValidation, row.Code, row.AccountType)
		}
	}

	result := &dto.SeedChartResult{}
	now := s.Now()

	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := tx.FindLegalEntityByID(ctx, legalEntityID); err != nil {
			return err
		}

		// code -> account id of everything that exists so far
		resolved := make(map[string]string)
		pending := make([]domain.ChartRow, 0, len(req.Rows))
		for _, row := range req.Rows {
			existing, err := tx.FindAccountByCode(ctx, legalEntityID, row.Code)
			switch {
			case err == nil:
				resolved[row.Code] = existing.AccountID
				result.Existing++
			case errors.Is(err, apperrors.ErrNotFound):
				pending = append(pending, row)
			default:
				return err
			}
		}

		for len(pending) > 0 {
			result.Passes++
			next := pending[:0:0]
			for _, row := range pending {
				var parentID *string
				if row.ParentCode != "" {
					id, ok := resolved[row.ParentCode]
					if !ok {
						parent, err := tx.FindAccountByCode(ctx, legalEntityID, row.ParentCode)
						if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
							return err
						}
						if parent == nil {
							next = append(next, row)
							continue
						}
						id = parent.AccountID
						resolved[row.ParentCode] = id
					}
					parentID = &id
				}

				account := domain.Account{
					AccountID:     uuid.NewString(),
					LegalEntityID: legalEntityID,
					Code:          row.Code,
					Name:          row.Name,
					AccountType:   row.AccountType,
					ParentID:      parentID,
					IsActive:      true,
					AuditFields:   domain.NewAuditFields(req.CreatedBy, now),
				}
				if err := tx.SaveAccount(ctx, account); err != nil {
					return fmt.Errorf("seed account %s: %w", row.Code, err)
				}
				resolved[row.Code] = account.AccountID
				result.Created++
			}

			if len(next) == len(pending) {
				return fmt.Errorf("%w: unresolved parent for accounts %s", apperrors.ErrValidation, unresolvedCodes(next))
			}
			pending = next
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts", slog.String("legal_entity_id", legalEntityID))
		return nil, err
	}

	s.LogInfo(ctx, "Chart of accounts seeded",
		slog.String("legal_entity_id", legalEntityID),
		slog.Int("created", result.Created),
		slog.Int("existing", result.Existing),
		slog.Int("passes", result.Passes))
	return result, nil
}

func unresolvedCodes(rows []domain.ChartRow) string {
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, fmt.Sprintf("%s(parent %s)", row.Code, row.ParentCode))
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}
