package service

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
)

// Export table names as they appear in URLs.
const (
	ExportStudents       = "students"
	ExportTransportation = "transportation"
	ExportElectronics    = "electronics"
	ExportFoodWaste      = "food-waste"
	ExportActivities     = "activities"
)

var exportCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: null.String{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(null.String).String, nil
			},
		},
	},
}

type exportSource interface {
	Students(ctx context.Context, filter *types.DashboardFilter) ([]*model.Student, error)
	Transportation(ctx context.Context, filter *types.DashboardFilter) ([]*model.Transportation, error)
	Electronics(ctx context.Context, filter *types.DashboardFilter) ([]*model.Electronics, error)
	FoodWaste(ctx context.Context, filter *types.DashboardFilter) ([]*model.FoodWaste, error)
	Activities(ctx context.Context, filter *types.DashboardFilter) ([]*model.ActivityLog, error)
}

// Export dumps filtered dashboard tables as CSV.
type Export struct {
	source exportSource
}

func NewExport(dashboard *Dashboard) *Export {
	return &Export{source: dashboard}
}

// WriteCSV writes the header and every row of table matching filter. An empty
// result still produces the header row.
func (s *Export) WriteCSV(ctx context.Context, w io.Writer, table string, filter *types.DashboardFilter) error {
	switch table {
	case ExportStudents:
		rows, err := s.source.Students(ctx, filter)
		if err != nil {
			return err
		}
		return writeCSV[model.Student, model.StudentForExport](w, model.StudentExportHeader, rows)
	case ExportTransportation:
		rows, err := s.source.Transportation(ctx, filter)
		if err != nil {
			return err
		}
		return writeCSV[model.Transportation, model.TransportationForExport](w, model.TransportationExportHeader, rows)
	case ExportElectronics:
		rows, err := s.source.Electronics(ctx, filter)
		if err != nil {
			return err
		}
		return writeCSV[model.Electronics, model.ElectronicsForExport](w, model.ElectronicsExportHeader, rows)
	case ExportFoodWaste:
		rows, err := s.source.FoodWaste(ctx, filter)
		if err != nil {
			return err
		}
		return writeCSV[model.FoodWaste, model.FoodWasteForExport](w, model.FoodWasteExportHeader, rows)
	case ExportActivities:
		rows, err := s.source.Activities(ctx, filter)
		if err != nil {
			return err
		}
		return writeCSV[model.ActivityLog, model.ActivityLogForExport](w, model.ActivityLogExportHeader, rows)
	default:
		return emerr.ErrNotFound.Msg("unknown export table %q", table)
	}
}

func writeCSV[M any, R model.ExportRecord](w io.Writer, header []string, rows []*M) error {
	records := make([]R, 0, len(rows))
	if len(rows) > 0 {
		if err := copier.CopyWithOption(&records, &rows, exportCopyOption); err != nil {
			return errors.Wrap(err, "export: copy rows")
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
