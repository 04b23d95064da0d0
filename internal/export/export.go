// Package export renders stored rate history as a PNG chart or an XLSX workbook.
package export

import (
	"errors"

	"eiborservice/internal/repository"
)

// ErrNotEnoughData is returned when fewer than two observations are available.
var ErrNotEnoughData = errors.New("not enough data points")

const minPoints = 2

func checkRows(rows []repository.RateObservation) error {
	if len(rows) < minPoints {
		return ErrNotEnoughData
	}
	return nil
}
