// Package pdf gera o comprovante de venda em PDF com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Nome da loja  │  Data da venda      │
//	│  ─────────────────────────────────────────  │
//	│  CLIENTE (quando informado)                  │
//	│  ITENS: descrição concatenada                │
//	│  TOTAIS: quantidade / preço unitário / TOTAL │
//	│  FORMA DE PAGAMENTO                          │
//	│  RODAPÉ: identificador da venda              │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appsales "github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appsales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator constrói o gerador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{}
}

// GenerateReceiptPDF gera o comprovante e devolve seus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(sale *entity.Sale, storeName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de venda", true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, storeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if sale.ClientName != "" {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(
				text.New("Cliente: "+sale.ClientName, props.Text{Size: 9, Top: 2}),
			),
		))
	}

	m.AddRows(row.New(10).Add(
		col.New(12).Add(
			text.New("Itens: "+sale.Description, props.Text{Size: 9, Top: 2}),
		),
	))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(
			text.New("Forma de pagamento: "+sale.PaymentMethod, props.Text{Size: 9, Top: 2}),
		),
	))

	m.AddRows(row.New(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(
		col.New(12).Add(
			text.New("Venda "+sale.ID, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar comprovante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome da loja (esq) e data da venda (dir).
func headerRow(sale *entity.Sale, storeName string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprovante de venda", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 2,
			}),
		),
	)
}

// totalsRow: quantidade, preço unitário médio e total a pagar.
func totalsRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(4).Add(
			text.New(fmt.Sprintf("Quantidade: %d", sale.Quantity), props.Text{Size: 9, Top: 3}),
		),
		col.New(4).Add(
			text.New("Unitário: R$ "+sale.UnitPrice.StringFixed(2), props.Text{Size: 9, Top: 3}),
		),
		col.New(4).Add(
			text.New("TOTAL: R$ "+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
