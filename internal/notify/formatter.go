package notify

import (
	"errors"

	"github.com/nikolayk812/pdv-demo/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter turns cart outcomes into operator-facing notifications in one language.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(lang language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(lang)}
}

func (f *Formatter) ItemAdded(product domain.Product, quantity int) domain.Notification {
	return domain.Notification{
		Level:       domain.NotificationSuccess,
		Title:       f.printer.Sprintf(msgItemAdded),
		Description: f.printer.Sprintf(msgItemAddedDesc, product.Name, quantity),
	}
}

func (f *Formatter) QuantityUpdated() domain.Notification {
	return domain.Notification{
		Level: domain.NotificationInfo,
		Title: f.printer.Sprintf(msgQuantityUpdated),
	}
}

func (f *Formatter) ItemRemoved() domain.Notification {
	return domain.Notification{
		Level: domain.NotificationInfo,
		Title: f.printer.Sprintf(msgItemRemoved),
	}
}

func (f *Formatter) CartCleared() domain.Notification {
	return domain.Notification{
		Level:       domain.NotificationInfo,
		Title:       f.printer.Sprintf(msgCartCleared),
		Description: f.printer.Sprintf(msgCartClearedDesc),
	}
}

func (f *Formatter) SaleFinalized(sale domain.CompletedSale) domain.Notification {
	return domain.Notification{
		Level:       domain.NotificationSuccess,
		Title:       f.printer.Sprintf(msgSaleFinalized),
		Description: f.printer.Sprintf(msgSaleFinalizedDesc, f.Amount(sale.Total), f.PaymentMethod(sale.PaymentMethod)),
	}
}

// ProductSaved confirms a created or updated catalog product.
func (f *Formatter) ProductSaved(product domain.Product, created bool) domain.Notification {
	title, desc := msgProductUpdated, msgProductUpdatedDesc
	if created {
		title, desc = msgProductAdded, msgProductAddedDesc
	}

	return domain.Notification{
		Level:       domain.NotificationSuccess,
		Title:       f.printer.Sprintf(title),
		Description: f.printer.Sprintf(desc, product.Name),
	}
}

func (f *Formatter) ProductRemoved(product domain.Product) domain.Notification {
	return domain.Notification{
		Level:       domain.NotificationInfo,
		Title:       f.printer.Sprintf(msgProductRemoved),
		Description: f.printer.Sprintf(msgProductRemovedDesc, product.Name),
	}
}

// Error maps a cart rejection to a notification. Unknown errors get a generic text.
func (f *Formatter) Error(err error) domain.Notification {
	n := domain.Notification{Level: domain.NotificationError}

	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		n.Title = f.printer.Sprintf(msgInsufficientStock)
		n.Description = f.printer.Sprintf(msgOnlyUnitsAvailable, stockErr.Available)
	case errors.Is(err, domain.ErrEmptyCart):
		n.Title = f.printer.Sprintf(msgEmptyCart)
		n.Description = f.printer.Sprintf(msgEmptyCartDesc)
	case errors.Is(err, domain.ErrProductNotFound):
		n.Title = f.printer.Sprintf(msgProductNotFound)
		n.Description = f.printer.Sprintf(msgProductNotFoundD)
	case errors.Is(err, domain.ErrProductNotInCart):
		n.Title = f.printer.Sprintf(msgNotInCart)
		n.Description = f.printer.Sprintf(msgNotInCartDesc)
	case errors.Is(err, domain.ErrInvalidQuantity):
		n.Title = f.printer.Sprintf(msgInvalidQuantity)
		n.Description = f.printer.Sprintf(msgInvalidQuantityD)
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		n.Title = f.printer.Sprintf(msgInvalidPayment)
		n.Description = f.printer.Sprintf(msgInvalidPaymentDesc)
	case errors.Is(err, domain.ErrCurrencyMismatch):
		n.Title = f.printer.Sprintf(msgCurrencyMismatch)
		n.Description = f.printer.Sprintf(msgCurrencyMismatchD)
	case errors.Is(err, domain.ErrInvalidProduct):
		n.Title = f.printer.Sprintf(msgInvalidProduct)
		n.Description = f.printer.Sprintf(msgInvalidProductDesc)
	case errors.Is(err, domain.ErrProductCodeTaken):
		n.Title = f.printer.Sprintf(msgCodeTaken)
		n.Description = f.printer.Sprintf(msgCodeTakenDesc)
	default:
		n.Title = f.printer.Sprintf(msgUnexpected)
		n.Description = f.printer.Sprintf(msgUnexpectedDesc)
	}

	return n
}

// Amount renders money with its currency symbol, e.g. "R$ 25,00" in pt-BR.
func (f *Formatter) Amount(m domain.Money) string {
	return f.printer.Sprint(currency.Symbol(m.Currency.Amount(m.Amount.InexactFloat64())))
}

func (f *Formatter) PaymentMethod(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentCash:
		return f.printer.Sprintf(msgPaymentCash)
	case domain.PaymentCard:
		return f.printer.Sprintf(msgPaymentCard)
	case domain.PaymentPix:
		return f.printer.Sprintf(msgPaymentPix)
	default:
		return string(method)
	}
}
