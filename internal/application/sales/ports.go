package sales

import (
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// TxRunner executa o callback com repositórios atados a uma única transação
// de escrita: as N atualizações de produto e o acréscimo ao livro de vendas
// são confirmados ou desfeitos juntos.
type TxRunner interface {
	Run(fn func(
		products repository.ProductRepository,
		settings repository.SettingsRepository,
	) error) error
}

// ReceiptGenerator gera o comprovante de venda em PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(sale *entity.Sale, storeName string) ([]byte, error)
}
