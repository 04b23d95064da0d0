package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"eiborservice/internal/repository"
)

func history(rates ...string) []repository.RateObservation {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	out := make([]repository.RateObservation, len(rates))
	for i, r := range rates {
		out[i] = repository.RateObservation{
			RateDate:    start.AddDate(0, 0, i),
			Tenor:       repository.Tenor3Month,
			Rate:        decimal.RequireFromString(r),
			DailyChange: decimal.Zero,
		}
		if i > 0 {
			prev := out[i-1].Rate
			out[i].PreviousRate = decimal.NewNullDecimal(prev)
			out[i].DailyChange = out[i].Rate.Sub(prev)
		}
	}
	return out
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderHistoryPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistoryPNG(&buf, repository.Tenor3Month, history("4.942", "4.93", "4.931")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderHistoryPNG_FlatSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistoryPNG(&buf, repository.TenorOvernight, history("5.24", "5.24")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderHistoryPNG_NotEnoughData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderHistoryPNG(&buf, repository.Tenor3Month, history("4.9")), ErrNotEnoughData)
	assert.ErrorIs(t, RenderHistoryPNG(&buf, repository.Tenor3Month, nil), ErrNotEnoughData)
	assert.Zero(t, buf.Len())
}

func TestWriteHistoryXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryXLSX(&buf, repository.Tenor3Month, history("4.942", "4.93", "4.931")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test reader

	assert.Equal(t, []string{"3_month"}, f.GetSheetList())

	rows, err := f.GetRows("3_month")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-03-10", rows[1][0])
	assert.Equal(t, "3_month", rows[1][1])
	assert.Equal(t, "2025-03-12", rows[3][0])

	raw, err := f.GetCellValue("3_month", "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "4.93", raw)

	// first row has no previous rate
	prev, err := f.GetCellValue("3_month", "D2")
	require.NoError(t, err)
	assert.Empty(t, prev)
}

func TestWriteHistoryXLSX_NotEnoughData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteHistoryXLSX(&buf, repository.Tenor3Month, history("4.9")), ErrNotEnoughData)
}
