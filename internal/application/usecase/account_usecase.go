package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// AccountUseCase administra el plan de cuentas y las cuentas bancarias de la empresa.
type AccountUseCase struct {
	headRepo repository.AccountHeadRepository
	bankRepo repository.BankAccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(headRepo repository.AccountHeadRepository, bankRepo repository.BankAccountRepository) *AccountUseCase {
	return &AccountUseCase{headRepo: headRepo, bankRepo: bankRepo}
}

// ── Plan de cuentas ───────────────────────────────────────────────────────────

// CreateHead crea una cuenta. El código es único por empresa; el padre debe existir y ser del mismo grupo.
func (uc *AccountUseCase) CreateHead(ctx context.Context, companyID string, in dto.CreateAccountHeadRequest) (*dto.AccountHeadResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.headRepo.GetByCompanyAndCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkParent(ctx, companyID, "", in.ParentID, in.Group); err != nil {
		return nil, err
	}
	now := time.Now()
	head := &entity.AccountHead{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Group:     in.Group,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.headRepo.Create(ctx, head); err != nil {
		return nil, err
	}
	return entityToAccountHeadResponse(head), nil
}

// GetHead obtiene una cuenta de la empresa.
func (uc *AccountUseCase) GetHead(ctx context.Context, companyID, id string) (*dto.AccountHeadResponse, error) {
	head, err := uc.loadHead(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToAccountHeadResponse(head), nil
}

// ListHeads lista el plan de cuentas; group vacío = todos los grupos.
func (uc *AccountUseCase) ListHeads(ctx context.Context, companyID, group string) ([]dto.AccountHeadResponse, error) {
	list, err := uc.headRepo.ListByCompany(ctx, companyID, group)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountHeadResponse, 0, len(list))
	for _, h := range list {
		out = append(out, *entityToAccountHeadResponse(h))
	}
	return out, nil
}

// UpdateHead modifica nombre, grupo o padre de una cuenta.
func (uc *AccountUseCase) UpdateHead(ctx context.Context, companyID, id string, in dto.UpdateAccountHeadRequest) (*dto.AccountHeadResponse, error) {
	head, err := uc.loadHead(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		head.Name = name
	}
	if in.Group != nil {
		head.Group = *in.Group
	}
	if in.ParentID != nil {
		head.ParentID = *in.ParentID
	}
	if err := uc.checkParent(ctx, companyID, head.ID, head.ParentID, head.Group); err != nil {
		return nil, err
	}
	head.UpdatedAt = time.Now()
	if err := uc.headRepo.Update(ctx, head); err != nil {
		return nil, err
	}
	return entityToAccountHeadResponse(head), nil
}

// DeleteHead elimina una cuenta. La base rechaza el borrado si tiene gastos o subcuentas (ErrConflict).
func (uc *AccountUseCase) DeleteHead(ctx context.Context, companyID, id string) error {
	if _, err := uc.loadHead(ctx, companyID, id); err != nil {
		return err
	}
	return uc.headRepo.Delete(ctx, id)
}

func (uc *AccountUseCase) loadHead(ctx context.Context, companyID, id string) (*entity.AccountHead, error) {
	head, err := uc.headRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, domain.ErrNotFound
	}
	if head.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return head, nil
}

// checkParent valida la cuenta padre; una cuenta no puede ser su propio ancestro.
func (uc *AccountUseCase) checkParent(ctx context.Context, companyID, selfID, parentID, group string) error {
	seen := map[string]bool{}
	for id := parentID; id != ""; {
		if id == selfID || seen[id] {
			return domain.ErrConflict
		}
		seen[id] = true
		parent, err := uc.loadHead(ctx, companyID, id)
		if err != nil {
			return err
		}
		if parent.Group != group {
			return domain.ErrInvalidInput
		}
		id = parent.ParentID
	}
	return nil
}

// ── Cuentas bancarias ─────────────────────────────────────────────────────────

// CreateBankAccount registra una cuenta bancaria.
func (uc *AccountUseCase) CreateBankAccount(ctx context.Context, companyID string, in dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	if !dto.AmountColumn.Fits(in.OpeningBalance) {
		return nil, fmt.Errorf("%w: saldo inicial fuera de rango o con más de %d decimales", domain.ErrInvalidInput, dto.AmountColumn.Scale)
	}
	now := time.Now()
	acc := &entity.BankAccount{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           strings.TrimSpace(in.Name),
		BankName:       strings.TrimSpace(in.BankName),
		AccountNumber:  strings.TrimSpace(in.AccountNumber),
		IFSC:           strings.ToUpper(in.IFSC),
		OpeningBalance: in.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if acc.Name == "" || acc.AccountNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.bankRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return entityToBankAccountResponse(acc), nil
}

// GetBankAccount obtiene una cuenta bancaria de la empresa.
func (uc *AccountUseCase) GetBankAccount(ctx context.Context, companyID, id string) (*dto.BankAccountResponse, error) {
	acc, err := uc.loadBankAccount(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToBankAccountResponse(acc), nil
}

// ListBankAccounts lista las cuentas bancarias de la empresa.
func (uc *AccountUseCase) ListBankAccounts(ctx context.Context, companyID string) ([]dto.BankAccountResponse, error) {
	list, err := uc.bankRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BankAccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *entityToBankAccountResponse(a))
	}
	return out, nil
}

// UpdateBankAccount modifica una cuenta bancaria (el número no cambia).
func (uc *AccountUseCase) UpdateBankAccount(ctx context.Context, companyID, id string, in dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error) {
	acc, err := uc.loadBankAccount(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		acc.Name = strings.TrimSpace(*in.Name)
	}
	if in.BankName != nil {
		acc.BankName = strings.TrimSpace(*in.BankName)
	}
	if in.IFSC != nil {
		acc.IFSC = strings.ToUpper(*in.IFSC)
	}
	if in.OpeningBalance != nil {
		if !dto.AmountColumn.Fits(*in.OpeningBalance) {
			return nil, fmt.Errorf("%w: saldo inicial fuera de rango o con más de %d decimales", domain.ErrInvalidInput, dto.AmountColumn.Scale)
		}
		acc.OpeningBalance = *in.OpeningBalance
	}
	if acc.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	acc.UpdatedAt = time.Now()
	if err := uc.bankRepo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return entityToBankAccountResponse(acc), nil
}

// DeleteBankAccount elimina una cuenta bancaria.
func (uc *AccountUseCase) DeleteBankAccount(ctx context.Context, companyID, id string) error {
	if _, err := uc.loadBankAccount(ctx, companyID, id); err != nil {
		return err
	}
	return uc.bankRepo.Delete(ctx, id)
}

func (uc *AccountUseCase) loadBankAccount(ctx context.Context, companyID, id string) (*entity.BankAccount, error) {
	acc, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	if acc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return acc, nil
}

func entityToAccountHeadResponse(h *entity.AccountHead) *dto.AccountHeadResponse {
	return &dto.AccountHeadResponse{
		ID:        h.ID,
		Code:      h.Code,
		Name:      h.Name,
		Group:     h.Group,
		ParentID:  h.ParentID,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func entityToBankAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		BankName:       a.BankName,
		AccountNumber:  dto.MaskAccountNumber(a.AccountNumber),
		IFSC:           a.IFSC,
		OpeningBalance: a.OpeningBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
