package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgItemAdded          = "Item added"
	msgItemAddedDesc      = "%s (%d in cart)."
	msgQuantityUpdated    = "Quantity updated"
	msgItemRemoved        = "Item removed"
	msgCartCleared        = "Sale cancelled"
	msgCartClearedDesc    = "The cart was emptied."
	msgSaleFinalized      = "Sale completed!"
	msgSaleFinalizedDesc  = "Payment of %s received via %s."
	msgInsufficientStock  = "Insufficient stock"
	msgOnlyUnitsAvailable = "Only %d units available."
	msgEmptyCart          = "Empty cart"
	msgEmptyCartDesc      = "Add products before completing the sale."
	msgProductNotFound    = "Product not found"
	msgProductNotFoundD   = "The product is not in the catalog."
	msgNotInCart          = "Product not in cart"
	msgNotInCartDesc      = "Add the product before changing its quantity."
	msgInvalidQuantity    = "Invalid quantity"
	msgInvalidQuantityD   = "Quantity cannot be negative."
	msgInvalidPayment     = "Invalid payment method"
	msgInvalidPaymentDesc = "Choose one of the accepted payment methods."
	msgCurrencyMismatch   = "Currency mismatch"
	msgCurrencyMismatchD  = "The product is priced in a currency this register does not take."
	msgInvalidProduct     = "Invalid product"
	msgInvalidProductDesc = "Check the code, name, prices and stock."
	msgCodeTaken          = "Code already registered"
	msgCodeTakenDesc      = "Another product already uses this barcode."
	msgProductAdded       = "Product added"
	msgProductAddedDesc   = "%s was added to the stock."
	msgProductUpdated     = "Product updated"
	msgProductUpdatedDesc = "%s was updated."
	msgProductRemoved     = "Product removed"
	msgProductRemovedDesc = "%s was removed from the stock."
	msgUnexpected         = "Something went wrong"
	msgUnexpectedDesc     = "The operation could not be completed. Try again."
	msgPaymentCash        = "Cash"
	msgPaymentCard        = "Card"
	msgPaymentPix         = "PIX"
)

func init() {
	pt := language.BrazilianPortuguese

	for key, text := range map[string]string{
		msgItemAdded:          "Item adicionado",
		msgItemAddedDesc:      "%s (%d no carrinho).",
		msgQuantityUpdated:    "Quantidade atualizada",
		msgItemRemoved:        "Item removido",
		msgCartCleared:        "Venda cancelada",
		msgCartClearedDesc:    "O carrinho foi esvaziado.",
		msgSaleFinalized:      "Venda finalizada!",
		msgSaleFinalizedDesc:  "Pagamento de %s realizado via %s.",
		msgInsufficientStock:  "Estoque insuficiente",
		msgOnlyUnitsAvailable: "Apenas %d unidades disponíveis.",
		msgEmptyCart:          "Carrinho vazio",
		msgEmptyCartDesc:      "Adicione produtos antes de finalizar a venda.",
		msgProductNotFound:    "Produto não encontrado",
		msgProductNotFoundD:   "O produto não está no catálogo.",
		msgNotInCart:          "Produto fora do carrinho",
		msgNotInCartDesc:      "Adicione o produto antes de alterar a quantidade.",
		msgInvalidQuantity:    "Quantidade inválida",
		msgInvalidQuantityD:   "A quantidade não pode ser negativa.",
		msgInvalidPayment:     "Forma de pagamento inválida",
		msgInvalidPaymentDesc: "Escolha uma das formas de pagamento aceitas.",
		msgCurrencyMismatch:   "Moeda incompatível",
		msgCurrencyMismatchD:  "O produto tem preço em uma moeda que este caixa não aceita.",
		msgInvalidProduct:     "Produto inválido",
		msgInvalidProductDesc: "Confira código, nome, preços e estoque.",
		msgCodeTaken:          "Código já cadastrado",
		msgCodeTakenDesc:      "Outro produto já usa este código de barras.",
		msgProductAdded:       "Produto adicionado",
		msgProductAddedDesc:   "%s foi adicionado ao estoque.",
		msgProductUpdated:     "Produto atualizado",
		msgProductUpdatedDesc: "%s foi atualizado com sucesso.",
		msgProductRemoved:     "Produto removido",
		msgProductRemovedDesc: "%s foi removido do estoque.",
		msgUnexpected:         "Algo deu errado",
		msgUnexpectedDesc:     "Não foi possível concluir a operação. Tente novamente.",
		msgPaymentCash:        "Dinheiro",
		msgPaymentCard:        "Cartão",
		msgPaymentPix:         "PIX",
	} {
		if err := message.SetString(pt, key, text); err != nil {
			panic(err)
		}
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
}
