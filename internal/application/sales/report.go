package sales

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// ReportUseCase visões derivadas do livro de vendas.
type ReportUseCase struct {
	settings repository.SettingsRepository
	receipts ReceiptGenerator
}

// NewReportUseCase constrói o caso de uso. receipts pode ser nil quando a
// geração de comprovantes estiver desabilitada.
func NewReportUseCase(settings repository.SettingsRepository, receipts ReceiptGenerator) *ReportUseCase {
	return &ReportUseCase{settings: settings, receipts: receipts}
}

// List devolve o livro de vendas, mais recente primeiro.
func (uc *ReportUseCase) List() ([]*entity.Sale, error) {
	sales, err := uc.settings.Sales()
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	return sales, nil
}

// GetByID devolve a venda com o ID dado ou nil.
func (uc *ReportUseCase) GetByID(id string) (*entity.Sale, error) {
	sales, err := uc.settings.Sales()
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// Summary agrupa o livro de vendas por forma de pagamento.
func (uc *ReportUseCase) Summary() (*dto.SalesSummaryResponse, error) {
	sales, err := uc.settings.Sales()
	if err != nil {
		return nil, err
	}
	type acc struct {
		count int
		total decimal.Decimal
	}
	byMethod := map[string]*acc{}
	grand := decimal.Zero
	for _, s := range sales {
		a := byMethod[s.PaymentMethod]
		if a == nil {
			a = &acc{total: decimal.Zero}
			byMethod[s.PaymentMethod] = a
		}
		a.count++
		a.total = a.total.Add(s.Total)
		grand = grand.Add(s.Total)
	}
	out := &dto.SalesSummaryResponse{GrandTotal: grand, Count: len(sales)}
	for _, method := range []string{entity.PaymentCash, entity.PaymentCard, entity.PaymentPix} {
		if a, ok := byMethod[method]; ok {
			out.ByPayment = append(out.ByPayment, dto.PaymentSummary{
				PaymentMethod: method,
				Count:         a.count,
				Total:         a.total,
			})
		}
	}
	return out, nil
}

// Receipt gera o comprovante em PDF da venda com o ID dado.
func (uc *ReportUseCase) Receipt(id, storeName string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceiptPDF(sale, storeName)
}
