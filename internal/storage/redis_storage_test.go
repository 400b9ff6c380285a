package storage_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/inventory-cart/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type redisStorageSuite struct {
	suite.Suite

	container *tcredis.RedisContainer
	client    *redis.Client
}

func TestRedisStorageSuite(t *testing.T) {
	suite.Run(t, new(redisStorageSuite))
}

func (suite *redisStorageSuite) SetupSuite() {
	testcontainers.SkipIfProviderIsNotHealthy(suite.T())
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startRedis(ctx)
	suite.Require().NoError(err)

	opts, err := redis.ParseURL(connStr)
	suite.Require().NoError(err)

	suite.client = redis.NewClient(opts)
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *redisStorageSuite) TearDownSuite() {
	if suite.client != nil {
		suite.NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *redisStorageSuite) TestDocumentStorage() {
	s, err := storage.NewRedis(suite.client, "test:")
	require.NoError(suite.T(), err)

	assertDocumentStorage(suite.T(), s)
}

func (suite *redisStorageSuite) TestStoresRoundTrip() {
	s, err := storage.NewRedis(suite.client, "test:")
	require.NoError(suite.T(), err)

	assertStoresRoundTrip(suite.T(), s)
}

func (suite *redisStorageSuite) TestKeyPrefix() {
	t := suite.T()
	ctx := t.Context()

	prefix := gofakeit.LetterN(8) + ":"
	s, err := storage.NewRedis(suite.client, prefix)
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "cart.json", []byte("{}")))

	raw, err := suite.client.Get(ctx, prefix+"cart.json").Result()
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func (suite *redisStorageSuite) TestNilClient() {
	_, err := storage.NewRedis(nil, "")
	suite.EqualError(err, "client is nil")
}
