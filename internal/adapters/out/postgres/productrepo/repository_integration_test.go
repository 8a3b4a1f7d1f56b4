package productrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ProductRepositoryIntegrationTestSuite provides integration tests for the
// inventory ledger using PostgreSQL containers, including the concurrency
// guarantee of conditional stock decrements.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
	tracker    *MockAggregateTracker
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = productrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	p := suite.createTestProduct(10)

	suite.tracker.On("TrackAggregate", p.ID(), p).Once()

	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(p))
	suite.Equal("SKU-TRAIL-42", loaded.SKU())
	suite.Equal(10, loaded.Quantity())
	suite.True(loaded.Price().IsEqual(kernel.MustMoneyFromFloat(500)))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_DecrementsStock() {
	ctx := context.Background()
	p := suite.addTestProduct(10)

	suite.Require().NoError(suite.repository.Reserve(ctx, p.ID(), 3))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(7, loaded.Quantity())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_InsufficientStock() {
	ctx := context.Background()
	p := suite.addTestProduct(2)

	err := suite.repository.Reserve(ctx, p.ID(), 3)

	var stockErr *product.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(3, stockErr.Requested)
	suite.Equal(2, stockErr.Available)

	// The failed reservation must not have touched the ledger.
	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Quantity())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_UnknownProduct() {
	err := suite.repository.Reserve(context.Background(), kernel.NewUUID(), 1)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestReserve_Concurrent drives more reservations at a product than it has
// stock and verifies the conditional decrement admits exactly the stock and
// never oversells.
func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_Concurrent() {
	ctx := context.Background()
	p := suite.addTestProduct(10)

	const attempts = 25

	results := make([]error, attempts)
	var g errgroup.Group
	for i := range attempts {
		g.Go(func() error {
			results[i] = suite.repository.Reserve(ctx, p.ID(), 1)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *product.InsufficientStockError
		suite.Require().ErrorAs(err, &stockErr)
	}
	suite.Equal(10, succeeded)

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(0, loaded.Quantity())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRelease_RestoresStock() {
	ctx := context.Background()
	p := suite.addTestProduct(10)

	suite.Require().NoError(suite.repository.Reserve(ctx, p.ID(), 4))
	suite.Require().NoError(suite.repository.Release(ctx, p.ID(), 4))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(10, loaded.Quantity())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_PersistsChanges() {
	ctx := context.Background()
	p := suite.addTestProduct(10)

	suite.Require().NoError(p.Reserve(3))
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(7, loaded.Quantity())
}

func (suite *ProductRepositoryIntegrationTestSuite) createTestProduct(quantity int) *product.Product {
	p, err := product.NewProduct(
		kernel.NewUUID(),
		"Trail Shoes",
		"SKU-TRAIL-42",
		kernel.MustMoneyFromFloat(500),
		quantity,
	)
	suite.Require().NoError(err)
	return p
}

func (suite *ProductRepositoryIntegrationTestSuite) addTestProduct(quantity int) *product.Product {
	p := suite.createTestProduct(quantity)
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
