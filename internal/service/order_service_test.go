package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

func seedOrder(t *testing.T, repo repository.OrderRepository, id string, status models.OrderStatus) {
	t.Helper()

	err := repo.Create(context.Background(), &models.Order{
		ID:            id,
		CustomerName:  "Amaka Obi",
		Status:        status,
		Total:         35500,
		PaymentMethod: models.PaymentCard,
		CreatedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestGetOrder(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, nil, slog.Default())
	seedOrder(t, repo, "order-1", models.OrderPending)

	order, err := svc.GetOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	_, err = svc.GetOrder(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = svc.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to processing", models.OrderPending, models.OrderProcessing, true},
		{"pending to cancelled", models.OrderPending, models.OrderCancelled, true},
		{"pending straight to delivered", models.OrderPending, models.OrderDelivered, false},
		{"processing to delivered", models.OrderProcessing, models.OrderDelivered, true},
		{"processing to cancelled", models.OrderProcessing, models.OrderCancelled, true},
		{"processing back to pending", models.OrderProcessing, models.OrderPending, false},
		{"delivered is terminal", models.OrderDelivered, models.OrderCancelled, false},
		{"cancelled is terminal", models.OrderCancelled, models.OrderProcessing, false},
		{"no self transition", models.OrderPending, models.OrderPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewInMemoryOrderRepository()
			svc := NewOrderService(repo, nil, slog.Default())
			seedOrder(t, repo, "order-1", tt.from)

			order, err := svc.UpdateStatus(context.Background(), "order-1", tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, order.Status)

				stored, err := repo.GetByID(context.Background(), "order-1")
				require.NoError(t, err)
				assert.Equal(t, tt.to, stored.Status)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition)

				stored, err := repo.GetByID(context.Background(), "order-1")
				require.NoError(t, err)
				assert.Equal(t, tt.from, stored.Status)
			}
		})
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, nil, slog.Default())

	_, err := svc.UpdateStatus(context.Background(), "", models.OrderProcessing)
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = svc.UpdateStatus(context.Background(), "order-1", "Shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "missing", models.OrderProcessing)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, nil, slog.Default())
	seedOrder(t, repo, "order-1", models.OrderPending)
	seedOrder(t, repo, "order-2", models.OrderPending)

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-2", orders[0].ID)
	assert.Equal(t, "order-1", orders[1].ID)
}
