package usecase_test

import (
	"context"
	"testing"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Create(ctx context.Context) (model.Cart, error) {
	args := m.Called(ctx)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *CartRepoMock) ListLines(ctx context.Context, cartID string) ([]model.CartLine, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartRepoMock) AddLine(ctx context.Context, cartID string, productID int64, qty int64) error {
	args := m.Called(ctx, cartID, productID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) SetLineQuantity(ctx context.Context, cartID string, productID int64, qty int64) error {
	args := m.Called(ctx, cartID, productID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) RemoveLine(ctx context.Context, cartID string, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartRepoMock) ReplaceLines(ctx context.Context, cartID string, lines []model.CartLine) error {
	args := m.Called(ctx, cartID, lines)
	return args.Error(0)
}

const testCartID = "a7f0c9a2-9c7f-4cc6-8f2a-0f5a7e6d4b31"

func activeProduct(id int64) model.Product {
	return model.Product{ID: id, Title: "X", Status: true}
}

func TestCartUsecase_AddProduct_ProductNotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddProduct(context.Background(), testCartID, 9, 1)
	assertKind(t, err, usecase.KindProductNotFound)
	cRepo.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddProduct_CartNotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1), nil)
	cRepo.On("AddLine", mock.Anything, testCartID, int64(1), int64(1)).Return(repo.ErrNotFound)

	_, err := uc.AddProduct(context.Background(), testCartID, 1, 1)
	assertKind(t, err, usecase.KindCartNotFound)
}

func TestCartUsecase_AddProduct_InactiveProduct(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Status: false}, nil)

	_, err := uc.AddProduct(context.Background(), testCartID, 2, 1)
	assertKind(t, err, usecase.KindInactiveProduct)
	cRepo.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddProduct_InvalidQuantity(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	_, err := uc.AddProduct(context.Background(), testCartID, 1, 0)
	assertKind(t, err, usecase.KindInvalidQuantity)
	pRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCartUsecase_AddProduct_Success(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1), nil)
	cRepo.On("AddLine", mock.Anything, testCartID, int64(1), int64(3)).Return(nil)
	cRepo.On("ListLines", mock.Anything, testCartID).Return([]model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 3},
	}, nil)

	out, err := uc.AddProduct(context.Background(), testCartID, 1, 3)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, int64(3), out.Products[0].Quantity)
	require.NotNil(t, out.Products[0].Product)
	assert.Equal(t, int64(1), out.Products[0].Product.ID)
	cRepo.AssertExpectations(t)
}

func TestCartUsecase_UpdateQuantity_Floor(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, new(ProductRepoMock))

	for _, qty := range []int64{0, -1} {
		_, err := uc.UpdateQuantity(context.Background(), testCartID, 1, qty)
		assertKind(t, err, usecase.KindInvalidQuantity)
	}
	cRepo.AssertNotCalled(t, "SetLineQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_LineNotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, new(ProductRepoMock))

	cRepo.On("SetLineQuantity", mock.Anything, testCartID, int64(5), int64(2)).Return(repo.ErrLineNotFound)

	_, err := uc.UpdateQuantity(context.Background(), testCartID, 5, 2)
	assertKind(t, err, usecase.KindLineNotFound)
}

func TestCartUsecase_UpdateQuantity_CartNotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, new(ProductRepoMock))

	cRepo.On("SetLineQuantity", mock.Anything, testCartID, int64(5), int64(2)).Return(repo.ErrNotFound)

	_, err := uc.UpdateQuantity(context.Background(), testCartID, 5, 2)
	assertKind(t, err, usecase.KindCartNotFound)
}

func TestCartUsecase_RemoveProduct_AbsentLineIsFine(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("RemoveLine", mock.Anything, testCartID, int64(8)).Return(nil)
	cRepo.On("ListLines", mock.Anything, testCartID).Return([]model.CartLine{}, nil)

	out, err := uc.RemoveProduct(context.Background(), testCartID, 8)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
}

func TestCartUsecase_ReplaceAll_FirstOffendingProductFails(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1), nil)
	pRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.ReplaceAll(context.Background(), testCartID, []usecase.LineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 42, Quantity: 1},
	})
	assertKind(t, err, usecase.KindProductNotFound)
	assert.Contains(t, err.Error(), "42")
	cRepo.AssertNotCalled(t, "ReplaceLines", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_ReplaceAll_MergesRepeatedIDs(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1), nil)
	cRepo.On("ReplaceLines", mock.Anything, testCartID, []model.CartLine{
		{ProductID: 1, Quantity: 5},
	}).Return(nil)
	cRepo.On("ListLines", mock.Anything, testCartID).Return([]model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 5},
	}, nil)

	out, err := uc.ReplaceAll(context.Background(), testCartID, []usecase.LineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, int64(5), out.Products[0].Quantity)
	cRepo.AssertExpectations(t)
}

func TestCartUsecase_GetCart_DanglingReferenceResolvesToNil(t *testing.T) {
	cRepo := new(CartRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("FindByID", mock.Anything, testCartID).Return(model.Cart{ID: testCartID}, nil)
	cRepo.On("ListLines", mock.Anything, testCartID).Return([]model.CartLine{
		{CartID: testCartID, ProductID: 1, Quantity: 2},
		{CartID: testCartID, ProductID: 9, Quantity: 1},
	}, nil)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1), nil)
	pRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.GetCart(context.Background(), testCartID)
	require.NoError(t, err)
	require.Len(t, out.Products, 2)
	assert.NotNil(t, out.Products[0].Product)
	assert.Nil(t, out.Products[1].Product)
	assert.Equal(t, int64(1), out.Products[1].Quantity)
}

func TestCartUsecase_GetCart_NotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, new(ProductRepoMock))

	cRepo.On("FindByID", mock.Anything, testCartID).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.GetCart(context.Background(), testCartID)
	assertKind(t, err, usecase.KindCartNotFound)
}

func TestCartUsecase_CreateCart(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := usecase.NewCartUsecase(cRepo, new(ProductRepoMock))

	cRepo.On("Create", mock.Anything).Return(model.Cart{ID: testCartID}, nil)

	out, err := uc.CreateCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCartID, out.ID)
	assert.Empty(t, out.Products)
}
