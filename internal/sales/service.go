package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/metrics"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"golang.org/x/text/currency"
)

type Service struct {
	repo    port.SaleRepository
	metrics *metrics.CartMetrics
	logg    *logger.Logger
}

func NewService(repo port.SaleRepository, m *metrics.CartMetrics, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	return &Service{
		repo:    repo,
		metrics: m,
		logg:    logg,
	}, nil
}

// Record persists a finalized sale and deducts its stock.
func (s *Service) Record(ctx context.Context, sale domain.CompletedSale) error {
	if err := s.repo.SaveSale(ctx, sale); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "sale_id", sale.ID.String()), "record sale failed", err)
		return fmt.Errorf("repo.SaveSale: %w", err)
	}

	s.metrics.ObserveSale(sale)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"sale_id":        sale.ID.String(),
		"payment_method": string(sale.PaymentMethod),
		"total":          sale.Total.String(),
		"item_count":     sale.ItemCount,
	}), "sale recorded")

	return nil
}

func (s *Service) Get(ctx context.Context, saleID uuid.UUID) (domain.CompletedSale, error) {
	sale, err := s.repo.GetSale(ctx, saleID)
	if err != nil {
		return domain.CompletedSale{}, fmt.Errorf("repo.GetSale: %w", err)
	}

	return sale, nil
}

// Report aggregates the sales finalized in [from, to). Sales in a
// currency other than cur are skipped and logged.
func (s *Service) Report(ctx context.Context, from, to time.Time, cur currency.Unit) (domain.SalesReport, error) {
	if !from.Before(to) {
		return domain.SalesReport{}, fmt.Errorf("from[%s] is not before to[%s]", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	sales, err := s.repo.ListSales(ctx, from, to)
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("repo.ListSales: %w", err)
	}

	report := domain.SalesReport{
		From:            from,
		To:              to,
		Revenue:         domain.ZeroMoney(cur),
		ByPaymentMethod: make(map[domain.PaymentMethod]domain.Money),
	}

	for _, sale := range sales {
		if sale.Total.Currency != cur {
			s.logg.Warn(s.logg.WithField(ctx, "sale_id", sale.ID.String()), "sale skipped in report: currency "+sale.Total.Currency.String())
			continue
		}

		report.Revenue, err = report.Revenue.Add(sale.Total)
		if err != nil {
			return domain.SalesReport{}, fmt.Errorf("revenue.Add: %w", err)
		}

		byMethod, ok := report.ByPaymentMethod[sale.PaymentMethod]
		if !ok {
			byMethod = domain.ZeroMoney(cur)
		}
		report.ByPaymentMethod[sale.PaymentMethod], err = byMethod.Add(sale.Total)
		if err != nil {
			return domain.SalesReport{}, fmt.Errorf("byMethod.Add: %w", err)
		}

		report.SaleCount++
		report.ItemCount += sale.ItemCount
	}

	return report, nil
}
