package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/pkg/gst"
)

// DocumentOptions reglas configurables de validación.
type DocumentOptions struct {
	StrictSlabs bool // solo tasas GST estándar
}

// DocumentUseCase crea, edita y consulta facturas y devoluciones.
// Los totales se calculan siempre con ledger.ComputeDocument a partir de las líneas.
type DocumentUseCase struct {
	txRunner  DocumentTxRunner
	docRepo   repository.DocumentRepository
	partyRepo repository.PartyRepository
	metrics   MetricsRecorder
	opts      DocumentOptions
	now       func() time.Time
}

// NewDocumentUseCase construye el caso de uso. metrics puede ser nil.
func NewDocumentUseCase(
	txRunner DocumentTxRunner,
	docRepo repository.DocumentRepository,
	partyRepo repository.PartyRepository,
	metrics MetricsRecorder,
	opts DocumentOptions,
) *DocumentUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &DocumentUseCase{
		txRunner:  txRunner,
		docRepo:   docRepo,
		partyRepo: partyRepo,
		metrics:   metrics,
		opts:      opts,
		now:       time.Now,
	}
}

// Create valida el documento, calcula totales y guarda cabecera y líneas en una sola transacción.
func (uc *DocumentUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !entity.IsValidDocType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, in.Type)
	}
	party, err := uc.checkParty(ctx, companyID, in.Type, in.PartyID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.checkLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	date, err := dto.ParseDate(in.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha", domain.ErrInvalidInput)
	}
	number, err := uc.resolveNumber(ctx, companyID, in.Type, strings.TrimSpace(in.Number), now)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PartyID:   party.ID,
		Type:      in.Type,
		Number:    number,
		Date:      date,
		Reference: in.Reference,
		Notes:     in.Notes,
		Status:    entity.DocStatusDraft,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cacheTotals(doc, totals)
	lines := buildLines(doc.ID, in.Lines)

	err = uc.txRunner.RunDocument(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, l := range lines {
			if err := docRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DocumentSaved(doc.Type, totals.GrandTotal)
	return toDocumentResponse(doc, party.Name, lines, totals), nil
}

// Get obtiene un documento con sus líneas y totales recalculados.
func (uc *DocumentUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.docRepo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	party, err := uc.partyRepo.GetByID(ctx, doc.PartyID)
	if err != nil {
		return nil, err
	}
	partyName := ""
	if party != nil {
		partyName = party.Name
	}
	return toDocumentResponse(doc, partyName, lines, ledger.ComputeDocument(LinesToItems(lines))), nil
}

// List lista documentos de la empresa con filtros y paginación.
func (uc *DocumentUseCase) List(ctx context.Context, companyID string, in dto.DocumentListRequest) (*dto.DocumentListResponse, error) {
	in.DefaultPage()
	f := repository.DocumentFilter{
		Type:    in.Type,
		PartyID: in.PartyID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	var err error
	if f.From, err = optionalDate(in.From); err != nil {
		return nil, err
	}
	if f.To, err = optionalDate(in.To); err != nil {
		return nil, err
	}
	list, total, err := uc.docRepo.ListByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentSummaryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDocumentSummary(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update reemplaza cabecera y líneas de un documento en borrador.
// El estado se vuelve a exigir dentro de la transacción: si otro proceso lo contabilizó
// mientras tanto, UpdateDraft devuelve ErrConflict y las líneas no se tocan.
func (uc *DocumentUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocStatusDraft {
		return nil, fmt.Errorf("%w: el documento %s ya fue contabilizado", domain.ErrConflict, doc.Number)
	}
	partyID := in.PartyID
	if partyID == "" {
		partyID = doc.PartyID
	}
	party, err := uc.checkParty(ctx, companyID, doc.Type, partyID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.checkLines(in.Lines)
	if err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(in.Date, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha", domain.ErrInvalidInput)
	}

	doc.PartyID = party.ID
	doc.Date = date
	doc.Reference = in.Reference
	doc.Notes = in.Notes
	doc.UpdatedAt = uc.now()
	cacheTotals(doc, totals)
	lines := buildLines(doc.ID, in.Lines)

	err = uc.txRunner.RunDocument(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.UpdateDraft(ctx, doc); err != nil {
			return err
		}
		if err := docRepo.DeleteLines(ctx, doc.ID); err != nil {
			return err
		}
		for _, l := range lines {
			if err := docRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DocumentSaved(doc.Type, totals.GrandTotal)
	return toDocumentResponse(doc, party.Name, lines, totals), nil
}

// Post contabiliza el documento; a partir de ahí no se puede editar ni eliminar.
func (uc *DocumentUseCase) Post(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == entity.DocStatusPosted {
		return uc.Get(ctx, companyID, id)
	}
	// Un ErrConflict aquí solo puede venir de otro Post concurrente: la operación es idempotente.
	if err := uc.docRepo.MarkPosted(ctx, doc.ID, uc.now()); err != nil && !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	return uc.Get(ctx, companyID, id)
}

// Delete elimina un documento en borrador junto con sus líneas.
func (uc *DocumentUseCase) Delete(ctx context.Context, companyID, id string) error {
	doc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return err
	}
	if doc.Status != entity.DocStatusDraft {
		return fmt.Errorf("%w: el documento %s ya fue contabilizado", domain.ErrConflict, doc.Number)
	}
	// DeleteDraft vuelve a exigir DRAFT en la misma sentencia que borra.
	return uc.docRepo.DeleteDraft(ctx, doc.ID)
}

// Preview recalcula los totales de líneas en edición sin persistir nada.
// Solo rechaza entradas negativas; un documento vacío devuelve ceros.
func (uc *DocumentUseCase) Preview(in dto.PreviewRequest) (*dto.PreviewResponse, error) {
	if err := uc.validateLineValues(in.Lines); err != nil {
		return nil, err
	}
	totals := ledger.ComputeDocument(requestToLineItems(in.Lines))
	resp := &dto.PreviewResponse{
		Lines:  make([]dto.LineResultResponse, 0, len(totals.Lines)),
		Totals: totalsToResponse(totals),
	}
	for _, r := range totals.Lines {
		resp.Lines = append(resp.Lines, lineResultToResponse(r))
	}
	return resp, nil
}

// ── Validaciones ──────────────────────────────────────────────────────────────

func (uc *DocumentUseCase) load(ctx context.Context, companyID, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// checkParty exige un tercero de la empresa cuyo tipo corresponda al lado del documento.
func (uc *DocumentUseCase) checkParty(ctx context.Context, companyID, docType, partyID string) (*entity.Party, error) {
	if strings.TrimSpace(partyID) == "" {
		return nil, domain.ErrPartyRequired
	}
	party, err := uc.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if entity.IsPurchaseSide(docType) != party.IsSeller() {
		return nil, domain.ErrPartyKindMismatch
	}
	return party, nil
}

// checkLines valida las líneas y devuelve los totales; el gran total debe ser mayor que cero.
func (uc *DocumentUseCase) checkLines(lines []dto.DocumentLineRequest) (ledger.DocumentTotals, error) {
	if len(lines) == 0 {
		return ledger.DocumentTotals{}, fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	if err := uc.validateLineValues(lines); err != nil {
		return ledger.DocumentTotals{}, err
	}
	totals := ledger.ComputeDocument(requestToLineItems(lines))
	if !totals.GrandTotal.IsPositive() {
		return ledger.DocumentTotals{}, domain.ErrAmountNotPositive
	}
	return totals, nil
}

func (uc *DocumentUseCase) validateLineValues(lines []dto.DocumentLineRequest) error {
	for i, l := range lines {
		switch {
		case l.Quantity.IsNegative():
			return fmt.Errorf("%w: línea %d: cantidad negativa", domain.ErrInvalidInput, i+1)
		case l.UnitRate.IsNegative():
			return fmt.Errorf("%w: línea %d: tarifa negativa", domain.ErrInvalidInput, i+1)
		case l.Discount.IsNegative():
			return fmt.Errorf("%w: línea %d: descuento negativo", domain.ErrInvalidInput, i+1)
		case l.TaxRatePercent.IsNegative():
			return fmt.Errorf("%w: línea %d: tasa de impuesto negativa", domain.ErrInvalidInput, i+1)
		case !dto.AmountColumn.Fits(l.Quantity):
			return fmt.Errorf("%w: línea %d: cantidad %s fuera de rango o con más de %d decimales", domain.ErrInvalidInput, i+1, l.Quantity, dto.AmountColumn.Scale)
		case !dto.AmountColumn.Fits(l.UnitRate):
			return fmt.Errorf("%w: línea %d: tarifa %s fuera de rango o con más de %d decimales", domain.ErrInvalidInput, i+1, l.UnitRate, dto.AmountColumn.Scale)
		case !dto.AmountColumn.Fits(l.Discount):
			return fmt.Errorf("%w: línea %d: descuento %s fuera de rango o con más de %d decimales", domain.ErrInvalidInput, i+1, l.Discount, dto.AmountColumn.Scale)
		case !dto.RateColumn.Fits(l.TaxRatePercent):
			return fmt.Errorf("%w: línea %d: tasa %s fuera de rango o con más de %d decimales", domain.ErrInvalidInput, i+1, l.TaxRatePercent, dto.RateColumn.Scale)
		case uc.opts.StrictSlabs && !gst.IsStandardSlab(l.TaxRatePercent):
			return fmt.Errorf("%w: línea %d: tasa %s%% no es una tarifa GST", domain.ErrInvalidInput, i+1, l.TaxRatePercent)
		}
	}
	return nil
}

// resolveNumber usa el número digitado o genera <PREFIJO>-<unix>; los números no se repiten por tipo.
func (uc *DocumentUseCase) resolveNumber(ctx context.Context, companyID, docType, number string, now time.Time) (string, error) {
	if number != "" {
		exists, err := uc.docRepo.ExistsNumber(ctx, companyID, docType, number)
		if err != nil {
			return "", err
		}
		if exists {
			return "", domain.ErrDuplicate
		}
		return number, nil
	}
	base := fmt.Sprintf("%s-%d", entity.DocumentPrefix(docType), now.Unix())
	candidate := base
	for n := 2; ; n++ {
		exists, err := uc.docRepo.ExistsNumber(ctx, companyID, docType, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func cacheTotals(doc *entity.Document, t ledger.DocumentTotals) {
	doc.SubTotal = t.SubTotal
	doc.TaxTotal = t.TotalTax
	doc.RoundOff = t.RoundOff
	doc.GrandTotal = t.GrandTotal
}

func buildLines(documentID string, in []dto.DocumentLineRequest) []*entity.DocumentLine {
	lines := make([]*entity.DocumentLine, len(in))
	for i, l := range in {
		lines[i] = &entity.DocumentLine{
			ID:             uuid.New().String(),
			DocumentID:     documentID,
			Position:       i + 1,
			Description:    strings.TrimSpace(l.Description),
			HSNCode:        l.HSNCode,
			Quantity:       l.Quantity,
			UnitRate:       l.UnitRate,
			Discount:       l.Discount,
			TaxRatePercent: l.TaxRatePercent,
		}
	}
	return lines
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}
