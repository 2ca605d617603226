package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/pkg/gst"
)

// PartyUseCase casos de uso para clientes y proveedores.
type PartyUseCase struct {
	repo repository.PartyRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo}
}

// Create crea un nuevo tercero. El GSTIN es opcional; si viene, se valida y no puede repetirse en la empresa.
// El código de estado se toma del GSTIN cuando no se envía.
func (uc *PartyUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	gstin, stateCode, err := uc.checkGSTIN(ctx, companyID, "", in.GSTIN, in.StateCode)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	party := &entity.Party{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Kind:      in.Kind,
		Name:      name,
		GSTIN:     gstin,
		StateCode: stateCode,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return entityToPartyResponse(party), nil
}

// Get obtiene un tercero de la empresa.
func (uc *PartyUseCase) Get(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	party, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToPartyResponse(party), nil
}

// List lista terceros de la empresa; kind y search son opcionales.
func (uc *PartyUseCase) List(ctx context.Context, companyID, kind, search string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, repository.PartyFilter{
		Kind:   kind,
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToPartyResponse(p))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica los datos del tercero.
func (uc *PartyUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	party, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		party.Name = name
	}
	if in.GSTIN != nil || in.StateCode != nil {
		rawGSTIN, rawState := party.GSTIN, party.StateCode
		if in.GSTIN != nil {
			rawGSTIN = *in.GSTIN
			if in.StateCode == nil {
				rawState = "" // se deriva del nuevo GSTIN
			}
		}
		if in.StateCode != nil {
			rawState = *in.StateCode
		}
		gstin, stateCode, err := uc.checkGSTIN(ctx, companyID, party.ID, rawGSTIN, rawState)
		if err != nil {
			return nil, err
		}
		party.GSTIN, party.StateCode = gstin, stateCode
	}
	if in.Email != nil {
		party.Email = *in.Email
	}
	if in.Phone != nil {
		party.Phone = *in.Phone
	}
	if in.Address != nil {
		party.Address = *in.Address
	}
	party.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, party); err != nil {
		return nil, err
	}
	return entityToPartyResponse(party), nil
}

// Delete elimina un tercero. La base de datos rechaza el borrado si tiene documentos (ErrConflict).
func (uc *PartyUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PartyUseCase) load(ctx context.Context, companyID, id string) (*entity.Party, error) {
	party, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return party, nil
}

// checkGSTIN normaliza y valida el GSTIN, comprueba duplicados y resuelve el código de estado.
func (uc *PartyUseCase) checkGSTIN(ctx context.Context, companyID, selfID, rawGSTIN, rawState string) (string, string, error) {
	gstin := gst.NormalizeGSTIN(rawGSTIN)
	stateCode := strings.TrimSpace(rawState)
	if gstin == "" {
		return "", stateCode, nil
	}
	if err := gst.ValidateGSTIN(gstin); err != nil {
		return "", "", domain.ErrInvalidGSTIN
	}
	if stateCode == "" {
		stateCode = gst.StateCode(gstin)
	} else if stateCode != gst.StateCode(gstin) {
		return "", "", domain.ErrInvalidGSTIN
	}
	existing, err := uc.repo.GetByCompanyAndGSTIN(ctx, companyID, gstin)
	if err != nil {
		return "", "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", "", domain.ErrDuplicate
	}
	return gstin, stateCode, nil
}

func entityToPartyResponse(p *entity.Party) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		Name:      p.Name,
		GSTIN:     p.GSTIN,
		StateCode: p.StateCode,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
