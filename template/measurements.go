package template

import (
	"context"
	"fmt"

	"github.com/orayew2002/acta-excel/picture"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/rs/zerolog"
)

// MeasurementsSheetName is the name of the OTDR measurement sheet.
const MeasurementsSheetName = "Mediciones OTDR"

var measurementColumnWidths = widthsFromPixels(map[string]float64{
	"A": 13, "B": 155, "C": 84, "D": 84, "E": 84, "F": 101,
	"G": 101, "H": 90, "I": 80, "J": 93, "K": 13,
})

var measurementRowHeights = map[int]float64{
	1: 12.75, 2: 12.75, 3: 23.25, 4: 12.75, 5: 13.5, 6: 13.5, 7: 6.75, 8: 13.5, 9: 6.75, 10: 13.5,
	11: 6.75, 12: 13.5, 13: 6.75, 14: 13.5, 15: 6.75, 16: 13.5, 17: 6.75, 18: 13.5, 19: 13.5,
	20: 33.75,
}

// measurementField is a labelled box of the measurement header. Fields without
// a Key are filled in by hand on the printed sheet.
type measurementField struct {
	Label     string
	LabelCell string
	Key       string
	DataRange string
	Highlight bool
}

var measurementFields = []measurementField{
	{Label: "Cliente", LabelCell: "B6", Key: "Nombre cliente / Proyecto", DataRange: "C6:F6"},
	{Label: "Distrito", LabelCell: "G6", Key: "Distrito", DataRange: "H6:J6"},
	{Label: "N° Proyecto", LabelCell: "B8", Key: "N° PROY/ COD: AX", DataRange: "C8:F8"},
	{Label: "Fecha", LabelCell: "G8", DataRange: "H8:J8"},
	{Label: "Nodo", LabelCell: "B10", Key: "Nodo", DataRange: "C10:D10"},
	{Label: "Tipo de fibra", LabelCell: "G10", DataRange: "H10:J10"},
	{Label: "Medic. Desde", LabelCell: "B12", DataRange: "C12:D12"},
	{Label: "Hasta", LabelCell: "G12", DataRange: "H12:I12"},
	{Label: "Cable", LabelCell: "B14", DataRange: "C14:E14", Highlight: true},
	{Label: "Ventana", LabelCell: "G14", DataRange: "H14:I14", Highlight: true},
}

// attenuation inputs on row 16: label range and the highlighted value cell.
var attenuationInputs = []struct{ Label, Range, Value string }{
	{"Atenuac.x enfrentador (Db)", "B16:C16", "D16"},
	{"Atenuación x empalme", "E16:F16", "G16"},
	{"Atenuación Db / Km", "H16:I16", "J16"},
}

var measurementHeaders = []struct{ Cell, Text string }{
	{"B20", "Cuenta cable / Nodo / N° Cable"},
	{"C20", "Nº Minitubo"},
	{"D20", "Nº Fibra"},
	{"E20", "Cantidad Empalmes"},
	{"F20", "Distancia (m)"},
	{"G20", "Total enfrentadores"},
	{"H20", "Teórico Db / Km"},
	{"I20", "Atenuacion Real"},
	{"J20", "Cumple S/N"},
}

var (
	fontOTDRLabel = sheet.Font{Name: "Arial", Size: 10, Bold: true}
	fontOTDRData  = sheet.Font{Name: "Arial", Size: 10}
)

// BuildMeasurements lays out the empty OTDR measurement form with the
// project header filled in.
func BuildMeasurements(ctx context.Context, s *sheet.Sheet, data map[string]string, logoPath string, logger zerolog.Logger) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("measurements: %w", err)
	}
	w := &writer{s: s, log: logger.With().Str("sheet", s.Name).Logger()}

	for col, width := range measurementColumnWidths {
		s.SetColWidth(col, width)
	}
	for row, h := range measurementRowHeights {
		s.SetRowHeight(row, h)
	}

	picture.Insert(s, logoPath, "B2", 64, 47, true, w.log)

	w.merge("B3:K3")
	w.put("B3", label("MEDICIONES CABLE DE FIBRA OPTICA", fontTitle18, &centerNoWrap))

	for _, f := range measurementFields {
		w.put(f.LabelCell, label(f.Label, fontOTDRLabel, &centerWrap))
		w.merge(f.DataRange)
		w.outline(f.DataRange, mediumSide)
		anchor := startOf(f.DataRange)
		if f.Key != "" {
			w.put(anchor, label(data[f.Key], fontOTDRData, &centerWrap))
		}
		if f.Highlight {
			w.put(anchor, sheet.Style{Fill: ptr(yellowFill)})
		}
	}

	for _, in := range attenuationInputs {
		w.merge(in.Range)
		w.put(startOf(in.Range), label(in.Label, fontOTDRLabel, &centerWrap))
		w.outline(in.Value, mediumSide)
		w.put(in.Value, sheet.Style{Fill: ptr(yellowFill)})
	}

	w.put("B18", label("Marca OTDR", fontOTDRLabel, &centerWrap))
	w.merge("C18:D18")
	w.outline("C18:D18", mediumSide)
	w.put("C18", sheet.Style{Fill: ptr(yellowFill)})
	w.merge("E18:F18")
	w.put("E18", label("Modelo OTDR", fontOTDRLabel, &centerWrap))
	w.merge("G18:I18")
	w.outline("G18:I18", mediumSide)
	w.put("G18", sheet.Style{Fill: ptr(yellowFill)})

	for _, h := range measurementHeaders {
		w.put(h.Cell, label(h.Text, fontOTDRLabel, &centerWrap))
	}

	if err := s.FillBorder("B20:J164", sheet.AllSides(thinSide)); err != nil {
		w.log.Error().Err(err).Msg("table border skipped")
	}
	w.outline("A1:K165", mediumSide)
	return nil
}
