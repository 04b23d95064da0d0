//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eiborservice/internal/repository"
	"eiborservice/internal/testkit"
)

func TestMain(m *testing.M) {
	testkit.Run(m)
}

func testDB() *sql.DB { return testkit.Global().DB() }

func testRDB() *redis.Client { return testkit.Global().Redis() }

func resetTestData(t *testing.T) {
	t.Helper()
	testkit.Global().Reset(t)
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func nopLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func day(s string) time.Time {
	d, err := time.Parse(repository.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func row(date string, tenor repository.Tenor, rate string, prev ...string) repository.RateObservation {
	obs := repository.RateObservation{
		RateDate: day(date),
		Tenor:    tenor,
		Rate:     decimal.RequireFromString(rate),
	}
	if len(prev) > 0 {
		p := decimal.RequireFromString(prev[0])
		obs.PreviousRate = decimal.NewNullDecimal(p)
		obs.DailyChange = obs.Rate.Sub(p)
	}
	return obs
}
