package port

import (
	"context"

	"github.com/nikolayk812/pdv-demo/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
