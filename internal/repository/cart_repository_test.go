package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/nikolayk812/cartsync-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type cartRepositorySuite struct {
	suite.Suite

	repo port.CartStore
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCart(suite.pool, "cart")
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestNewCart() {
	_, err := repository.NewCart(suite.pool, " ")
	suite.EqualError(err, "storage key is empty")

	_, err = repository.NewCart(nil, "cart")
	suite.EqualError(err, "pool is nil")
}

func (suite *cartRepositorySuite) TestSaveAndLoad() {
	defer suite.deleteAll()

	tests := []struct {
		name  string
		saves [][]domain.CartLine
		want  func(saves [][]domain.CartLine) []domain.CartLine
	}{
		{
			name:  "load without snapshot: empty",
			saves: nil,
			want:  func([][]domain.CartLine) []domain.CartLine { return nil },
		},
		{
			name:  "save lines: order preserved",
			saves: [][]domain.CartLine{{randomCartLine(), randomCartLine(), randomCartLine()}},
			want:  func(s [][]domain.CartLine) []domain.CartLine { return s[0] },
		},
		{
			name:  "second save overwrites first",
			saves: [][]domain.CartLine{{randomCartLine(), randomCartLine()}, {randomCartLine()}},
			want:  func(s [][]domain.CartLine) []domain.CartLine { return s[1] },
		},
		{
			name:  "save empty cart: cleared",
			saves: [][]domain.CartLine{{randomCartLine()}, {}},
			want:  func([][]domain.CartLine) []domain.CartLine { return nil },
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			defer suite.deleteAll()

			t := suite.T()
			ctx := t.Context()

			for _, lines := range tt.saves {
				require.NoError(t, suite.repo.Save(ctx, lines))
			}

			got, err := suite.repo.Load(ctx)
			require.NoError(t, err)

			assertCartLines(t, tt.want(tt.saves), got)
		})
	}
}

func (suite *cartRepositorySuite) TestKeysAreIsolated() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	other, err := repository.NewCart(suite.pool, gofakeit.UUID())
	require.NoError(t, err)

	lines := []domain.CartLine{randomCartLine()}
	require.NoError(t, suite.repo.Save(ctx, lines))
	require.NoError(t, other.Save(ctx, []domain.CartLine{randomCartLine(), randomCartLine()}))

	got, err := suite.repo.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, lines, got)

	otherLines, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, otherLines, 2)
}

func (suite *cartRepositorySuite) TestSaveWithTxRollsBack() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	before := []domain.CartLine{randomCartLine()}
	require.NoError(t, suite.repo.Save(ctx, before))

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx, "cart")
	require.NoError(t, txRepo.Save(ctx, []domain.CartLine{randomCartLine(), randomCartLine()}))
	require.NoError(t, tx.Rollback(ctx))

	got, err := suite.repo.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, before, got)
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_lines CASCADE")
	suite.NoError(err)
}
