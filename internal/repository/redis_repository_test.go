package repository_test

import (
	"testing"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/nikolayk812/cartsync-demo/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type redisCartSuite struct {
	suite.Suite

	container testcontainers.Container
	client    *redis.Client
	repo      port.CartStore
}

func TestRedisCartSuite(t *testing.T) {
	suite.Run(t, new(redisCartSuite))
}

func (suite *redisCartSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		endpoint string
		err      error
	)
	suite.container, endpoint, err = startRedis(ctx)
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.repo, err = repository.NewRedisCart(suite.client, "test", "cart")
	suite.Require().NoError(err)
}

func (suite *redisCartSuite) TearDownSuite() {
	if suite.client != nil {
		suite.NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *redisCartSuite) TearDownTest() {
	suite.NoError(suite.client.FlushDB(suite.T().Context()).Err())
}

func (suite *redisCartSuite) TestLoadMissingKey() {
	got, err := suite.repo.Load(suite.T().Context())
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *redisCartSuite) TestSaveOverwrites() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.repo.Save(ctx, []domain.CartLine{randomCartLine(), randomCartLine()}))

	want := []domain.CartLine{randomCartLine()}
	require.NoError(t, suite.repo.Save(ctx, want))

	got, err := suite.repo.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, want, got)

	raw, err := suite.client.Get(ctx, "test:cart").Result()
	require.NoError(t, err)
	suite.Contains(raw, want[0].Name)
}

func (suite *redisCartSuite) TestSaveEmpty() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.repo.Save(ctx, []domain.CartLine{randomCartLine()}))
	require.NoError(t, suite.repo.Save(ctx, nil))

	got, err := suite.repo.Load(ctx)
	require.NoError(t, err)
	suite.Empty(got)
}
