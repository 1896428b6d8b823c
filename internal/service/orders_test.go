package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/storage"
)

type recordingOrderRepo struct {
	fakeOrderRepo
	inserted    *models.Order
	statusCalls int
	statusErr   error
}

func (r *recordingOrderRepo) Insert(_ context.Context, o *models.Order) error {
	r.inserted = o
	return nil
}

func (r *recordingOrderRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ models.OrderStatus) error {
	r.statusCalls++
	return r.statusErr
}

type fakeProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func (f *fakeProductRepo) List(_ context.Context) ([]models.Product, error)          { return nil, nil }
func (f *fakeProductRepo) ListAvailable(_ context.Context) ([]models.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}
func (f *fakeProductRepo) Insert(_ context.Context, _ *models.Product) error { return nil }
func (f *fakeProductRepo) Update(_ context.Context, _ *models.Product) error { return nil }
func (f *fakeProductRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func testCatalog() (*fakeProductRepo, uuid.UUID, uuid.UUID) {
	lettuce := uuid.New()
	tomato := uuid.New()
	return &fakeProductRepo{products: map[uuid.UUID]*models.Product{
		lettuce: {ID: lettuce, Name: "Lettuce", Unit: "unit", UnitPrice: decimal.NewFromInt(150), Available: true},
		tomato:  {ID: tomato, Name: "Tomato", Unit: "kg", UnitPrice: decimal.NewFromInt(200), Available: false},
	}}, lettuce, tomato
}

func testRoster() (*fakeCustomerRepo, uuid.UUID) {
	id := uuid.New()
	return &fakeCustomerRepo{customers: map[uuid.UUID]*models.Customer{
		id: {ID: id, Name: "Ana", Phone: "099123456"},
	}}, id
}

func TestOrderService_Create(t *testing.T) {
	products, lettuce, _ := testCatalog()
	customers, customerID := testRoster()
	repo := &recordingOrderRepo{}
	svc := NewOrderService(repo, products, customers)

	out, err := svc.Create(context.Background(), NewOrder{
		CustomerID: customerID,
		Type:       models.TypeConventional,
		Lines: []NewOrderLine{
			{ProductID: lettuce, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.inserted)

	assert.Equal(t, models.StatusConfirmed, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(450)))
	require.Len(t, out.Lines, 1)
	// unit price frozen from the catalog, not taken from the caller
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, out.ID, out.Lines[0].OrderID)
}

func TestOrderService_Create_ValidationStopsBeforeStore(t *testing.T) {
	products, lettuce, tomato := testCatalog()
	customers, customerID := testRoster()

	cases := []struct {
		name    string
		in      NewOrder
		wantErr error
	}{
		{
			name:    "no lines",
			in:      NewOrder{CustomerID: customerID},
			wantErr: ErrNoLines,
		},
		{
			name: "unknown customer",
			in: NewOrder{
				CustomerID: uuid.New(),
				Lines:      []NewOrderLine{{ProductID: lettuce, Quantity: decimal.NewFromInt(1)}},
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "unknown product",
			in: NewOrder{
				CustomerID: customerID,
				Lines:      []NewOrderLine{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "unavailable product",
			in: NewOrder{
				CustomerID: customerID,
				Lines:      []NewOrderLine{{ProductID: tomato, Quantity: decimal.NewFromInt(1)}},
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name: "non-positive quantity",
			in: NewOrder{
				CustomerID: customerID,
				Lines:      []NewOrderLine{{ProductID: lettuce, Quantity: decimal.Zero}},
			},
			wantErr: ErrNonPositiveAmount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &recordingOrderRepo{}
			svc := NewOrderService(repo, products, customers)

			_, err := svc.Create(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, repo.inserted, "store must not be written on validation failure")
		})
	}
}

func TestOrderService_ChangeStatus(t *testing.T) {
	products, _, _ := testCatalog()
	customers, _ := testRoster()
	repo := &recordingOrderRepo{}
	svc := NewOrderService(repo, products, customers)

	// unknown status never reaches the repository
	err := svc.ChangeStatus(context.Background(), uuid.New(), "shipped")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Zero(t, repo.statusCalls)

	// valid statuses pass through; the repository enforces the table
	require.NoError(t, svc.ChangeStatus(context.Background(), uuid.New(), models.StatusPrepared))
	assert.Equal(t, 1, repo.statusCalls)

	repo.statusErr = models.ErrInvalidTransition
	err = svc.ChangeStatus(context.Background(), uuid.New(), models.StatusDelivered)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestExpenseService_Create(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewExpenseService(repo)

	err := svc.Create(context.Background(), &models.Expense{
		Name: "fuel", Category: models.CategoryLogistics, Amount: decimal.Zero,
	})
	require.ErrorIs(t, err, ErrNonPositiveAmount)

	err = svc.Create(context.Background(), &models.Expense{
		Name: "fuel", Category: "travel", Amount: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	e := &models.Expense{Name: "fuel", Category: models.CategoryLogistics, Amount: decimal.NewFromInt(10)}
	require.NoError(t, svc.Create(context.Background(), e))
	assert.NotEqual(t, uuid.Nil, e.ID)
}

func TestCatalogService_Create(t *testing.T) {
	products, _, _ := testCatalog()
	svc := NewCatalogService(products)

	err := svc.Create(context.Background(), &models.Product{Name: "Basil", UnitPrice: decimal.Zero})
	require.ErrorIs(t, err, ErrNonPositiveAmount)

	p := &models.Product{Name: "Basil", UnitPrice: decimal.NewFromInt(50), Unit: "bunch", Available: true}
	require.NoError(t, svc.Create(context.Background(), p))
	assert.NotEqual(t, uuid.Nil, p.ID)
}
