package main

import (
	"testing"

	"github.com/nikolayk812/pdv-demo/internal/cart"
	"github.com/nikolayk812/pdv-demo/internal/catalog"
	"github.com/nikolayk812/pdv-demo/internal/config"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCatalog_Memory(t *testing.T) {
	tests := []struct {
		name      string
		seed      bool
		wantCount int
	}{
		{
			name:      "seeded memory catalog: ok",
			seed:      true,
			wantCount: len(catalog.DefaultProducts()),
		},
		{
			name:      "empty memory catalog: ok",
			seed:      false,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				POS: config.POSConfig{
					CatalogBackend: config.CatalogMemory,
					SeedCatalog:    tt.seed,
				},
			}

			products, stock, closeFn, err := openCatalog(t.Context(), cfg, logger.Nop())
			require.NoError(t, err)
			defer closeFn()

			assert.NotNil(t, stock)

			found, err := products.SearchProducts(t.Context(), "")
			require.NoError(t, err)
			assert.Len(t, found, tt.wantCount)
		})
	}
}

func TestSeededCatalog_Currency(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError string
	}{
		{
			name: "default currency with seed: ok",
			env:  map[string]string{},
		},
		{
			name:      "USD with seed: error",
			env:       map[string]string{"PDV_CURRENCY": "USD"},
			wantError: "PDV_SEED_CATALOG requires PDV_CURRENCY=BRL",
		},
		{
			name: "USD without seed: ok",
			env:  map[string]string{"PDV_CURRENCY": "USD", "PDV_SEED_CATALOG": "false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			products, _, closeFn, err := openCatalog(t.Context(), cfg, logger.Nop())
			require.NoError(t, err)
			defer closeFn()

			engine, err := cart.New(products, cart.Config{
				Currency:       cfg.POS.CurrencyUnit(),
				PaymentMethods: cfg.POS.Methods(),
			})
			require.NoError(t, err)

			seeded, err := products.SearchProducts(t.Context(), "")
			require.NoError(t, err)

			// every seeded product can be sold at the configured currency
			for _, p := range seeded {
				_, err := engine.AddItem(t.Context(), p.ID)
				require.NoError(t, err, p.Code)
			}
			assert.Len(t, engine.Items(), len(seeded))
		})
	}
}
