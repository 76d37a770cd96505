package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// CheckoutUseCase registra a venda multi-item: valida o estoque de todas as
// linhas antes de mutar qualquer uma, depois decrementa quantidades,
// incrementa o acumulado de vendidos e acrescenta um registro ao livro de
// vendas — tudo dentro de uma única transação de escrita.
type CheckoutUseCase struct {
	tx      TxRunner
	clients repository.ClientRepository
}

// NewCheckoutUseCase constrói o caso de uso.
func NewCheckoutUseCase(tx TxRunner, clients repository.ClientRepository) *CheckoutUseCase {
	return &CheckoutUseCase{tx: tx, clients: clients}
}

// Checkout valida e registra a venda, devolvendo o registro gravado.
//
// Linha com estoque insuficiente (e sem o sinalizador de ignorar estoque)
// falha a operação inteira com domain.ErrInsufficientStock nomeando o
// produto, sem nenhuma mutação. Com o sinalizador ativo a checagem é pulada
// mas a quantidade ainda é subtraída: o estoque pode ficar negativo, e esse
// comportamento é deliberadamente mantido.
func (uc *CheckoutUseCase) Checkout(in dto.CheckoutRequest) (*entity.Sale, error) {
	if len(in.Lines) == 0 || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Snapshot do cliente (nome + ID), não uma referência viva.
	var clientName string
	if in.ClientID != 0 {
		client, err := uc.clients.GetByID(in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("cliente %d: %w", in.ClientID, domain.ErrNotFound)
		}
		clientName = client.Name
	}

	var sale *entity.Sale
	err := uc.tx.Run(func(products repository.ProductRepository, settings repository.SettingsRepository) error {
		ignore, err := settings.IgnoreStock()
		if err != nil {
			return err
		}

		// Primeira passada: carregar cada produto uma única vez e acumular a
		// quantidade pedida. Linhas duplicadas do mesmo produto precisam ser
		// somadas antes da checagem, senão cada uma valida e debita sobre uma
		// cópia desatualizada.
		type pending struct {
			product  *entity.Product
			quantity int64
		}
		index := make(map[uint64]int, len(in.Lines))
		batch := make([]*pending, 0, len(in.Lines))
		for _, line := range in.Lines {
			// Quantidade negativa é forçada ao valor absoluto, nunca rejeitada.
			qty := line.Quantity
			if qty < 0 {
				qty = -qty
			}
			if qty == 0 {
				return domain.ErrInvalidInput
			}
			if i, ok := index[line.ProductID]; ok {
				batch[i].quantity += qty
				continue
			}
			product, err := products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("produto %d: %w", line.ProductID, domain.ErrNotFound)
			}
			index[line.ProductID] = len(batch)
			batch = append(batch, &pending{product: product, quantity: qty})
		}
		for _, item := range batch {
			if !ignore[item.product.ID] && item.product.Quantity < item.quantity {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, item.product.Description)
			}
		}

		// Segunda passada: mutações. Qualquer erro desfaz a transação inteira.
		total := decimal.Zero
		var totalQty int64
		descriptions := make([]string, 0, len(batch))
		for _, item := range batch {
			item.product.Quantity -= item.quantity
			item.product.Sold += item.quantity
			if err := products.Update(item.product); err != nil {
				return err
			}
			total = total.Add(item.product.Price.Mul(decimal.NewFromInt(item.quantity)))
			totalQty += item.quantity
			descriptions = append(descriptions, item.product.Description)
		}
		total = total.Abs()

		sale = &entity.Sale{
			ID:            uuid.NewString(),
			Date:          time.Now(),
			ClientID:      in.ClientID,
			ClientName:    clientName,
			Description:   strings.Join(descriptions, ", "),
			Quantity:      totalQty,
			UnitPrice:     total.Div(decimal.NewFromInt(totalQty)),
			Total:         total,
			PaymentMethod: in.PaymentMethod,
		}
		return settings.AppendSale(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
