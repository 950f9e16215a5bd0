package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/orayew2002/acta-excel/picture"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/rs/zerolog"
)

// SummarySheetName is the name of the delivery summary sheet.
const SummarySheetName = "Acta Resumen Pext"

var summaryColumnWidths = widthsFromPixels(map[string]float64{
	"A": 11, "B": 7, "C": 21, "D": 133, "E": 30, "F": 27, "G": 20, "H": 43, "I": 25, "J": 5,
	"K": 25, "L": 6, "M": 26, "N": 5, "O": 39, "P": 13, "Q": 156, "R": 103, "S": 25, "T": 4,
	"U": 25, "V": 5, "W": 24, "X": 14, "Y": 10,
})

var summaryRowHeights = map[int]float64{
	1: 12.75, 2: 9.75, 3: 0.1, 4: 0.1, 5: 0.1, 6: 0.1, 7: 24, 8: 20.25, 9: 15.75, 10: 5.25,
	11: 15.75, 12: 4.5, 13: 15.75, 14: 3.75, 15: 15.73, 16: 3.75, 17: 15.73, 18: 3.75,
	19: 15.75, 20: 15.75, 21: 15.75, 22: 3.75, 23: 13.5, 24: 3.75, 25: 13.5, 26: 3.75, 27: 13.5,
	28: 3.75, 29: 13.5, 30: 3.75, 31: 13.5, 32: 3.75, 33: 15.75, 34: 3.75, 35: 13.5, 36: 3.75,
	37: 13.5, 38: 3.75, 39: 13.5, 40: 3.75, 41: 13.5, 42: 3.75, 43: 13.5, 44: 3.75, 45: 13.5,
	46: 3.75, 47: 15.75, 48: 3.75, 49: 13.5, 50: 3.75, 51: 13.5, 52: 3.75, 53: 13.5, 54: 3.75,
	55: 13.5, 56: 3.75, 57: 13.5, 58: 3.75, 59: 13.5, 60: 3.75, 61: 13.5, 62: 3.75, 63: 6.75,
	64: 22.5, 65: 13.5, 66: 4.5, 67: 12.5, 68: 12.5, 69: 3.75, 70: 13.5, 71: 3.75, 72: 13.5,
	73: 3.75, 74: 18.75, 75: 18.75, 76: 18.75, 77: 18.75, 78: 3.75, 79: 3.75, 80: 12.50,
	81: 3.75, 82: 12.50, 83: 12.50, 84: 3.75,
}

// summaryField is one labelled header box of the summary.
type summaryField struct {
	Label      string
	LabelCell  string
	Key        string
	DataRange  string
	LabelMerge string
}

var summaryFields = []summaryField{
	{Label: "Ciudad", LabelCell: "Q9", Key: "Ciudad", DataRange: "R9:W9"},
	{Label: "Contratista", LabelCell: "D11", Key: "Contratista", DataRange: "E11:O11"},
	{Label: "N° PROY/ COD: AX", LabelCell: "Q11", Key: "N° PROY/ COD: AX", DataRange: "R11:W11"},
	{Label: "Distrito", LabelCell: "D13", Key: "Distrito", DataRange: "E13:O13"},
	{Label: "Fecha inicio", LabelCell: "Q13", Key: "Fecha Inicio", DataRange: "R13:W13"},
	{Label: "Nodo", LabelCell: "D15", Key: "Nodo", DataRange: "E15:O15"},
	{Label: "Fecha termino", LabelCell: "Q15", Key: "Fecha Término", DataRange: "R15:W15"},
	{Label: "Nombre cliente / Proyecto", LabelCell: "D17", Key: "Nombre cliente / Proyecto", DataRange: "H17:W17", LabelMerge: "D17:G17"},
	{Label: "Direccion Cliente", LabelCell: "D19", Key: "Direccion Cliente", DataRange: "E19:W19"},
}

// checkItem is one checklist row: a left and a right item, each optionally
// followed by the Si/No/NA boxes.
type checkItem struct {
	Row        int
	Left       string
	LeftBold   bool
	LeftCheck  bool
	Right      string
	RightBold  bool
	RightCheck bool
}

var checklist = []checkItem{
	{Row: 23, Left: "Tendidos correctamente ordenado", Right: "Mufa corresponde a la suminstrada", LeftCheck: true, RightCheck: true},
	{Row: 25, Left: "Placas de identificación en cámaras (pdte)", Right: "Minitubos ordenados", LeftCheck: true, RightCheck: true},
	{Row: 27, Left: "Cable amarrado a soportes en camara", Right: "Fusiones correctamente realizadas y ordenadas", LeftCheck: true, RightCheck: true},
	{Row: 29, Left: "Reservas ( 2 vueltas en interior de camara)", Right: "Uso correcto de código colores", LeftCheck: true, RightCheck: true},
	{Row: 31, Left: "Limpieza de camara ( residuos)", Right: "Terminación correcta del Keplar", LeftCheck: true, RightCheck: true},
	{Row: 33, Left: "Tendido Aereo", LeftBold: true, Right: "Pruebas de FO y archivo en digital", RightCheck: true},
	{Row: 35, Left: "Tendidos correctamente ordenado", Right: "Identificacion cable FO Origen-Destino en Mufa FO", LeftCheck: true, RightCheck: true},
	{Row: 37, Left: "Placas de identificación (pdte)", Right: "Otros Trabajos", RightBold: true, LeftCheck: true},
	{Row: 39, Left: "Correcta terminacion de preformada", Right: "Colocación correcta de anclas", LeftCheck: true, RightCheck: true},
	{Row: 41, Left: "Correcta terminacion de suspensión", Right: "Instalación de mensajero adecuado", LeftCheck: true, RightCheck: true},
	{Row: 43, Left: "Reservas", Right: "Altura cruce de calles correcto", LeftCheck: true, RightCheck: true},
	{Row: 45, Left: "Limpieza de zona de trabajo", Right: "Colocacion Flejes en Bajadas de poste ", LeftCheck: true, RightCheck: true},
	{Row: 47, Left: "Cabeceras y Rack", LeftBold: true, Right: "Sellado ductos en Bajada de poste", RightCheck: true},
	{Row: 49, Left: "ODF Nodo correctamente terminadas", Right: "Postes alineados y en buen estado", LeftCheck: true, RightCheck: true},
	{Row: 51, Left: "ODF Cliente perfectamente instalada", Right: "Instalación de cajas verticales para Edificios", LeftCheck: true, RightCheck: true},
	{Row: 53, Left: "Identificación ODF", Right: "Entrega Asbuilt", RightBold: true, LeftCheck: true, RightCheck: true},
	{Row: 55, Left: "Rack instalados", Right: "Diseño", RightBold: true, LeftCheck: true},
	{Row: 57, Left: "Ordenadores horizontales", Right: "Diseño de acuerdo a lo Solicitado", LeftCheck: true, RightCheck: true},
	{Row: 59, Left: "Ordenadores verticales", Right: "Cumple con la Norma de Dibujo GTD Wigo", LeftCheck: true, RightCheck: true},
	{Row: 61, Right: "Entrega Cartas Ingresos en entidades del Estado", RightCheck: true},
}

var (
	leftChecks  = []string{"I", "K", "M"}
	rightChecks = []string{"S", "U", "W"}
)

// BuildSummary lays out the delivery summary sheet from the project fields.
// Missing fields leave their box blank.
func BuildSummary(ctx context.Context, s *sheet.Sheet, data map[string]string, logoPath string, logger zerolog.Logger) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	w := &writer{s: s, log: logger.With().Str("sheet", s.Name).Logger()}

	for col, width := range summaryColumnWidths {
		s.SetColWidth(col, width)
	}
	for row, h := range summaryRowHeights {
		s.SetRowHeight(row, h)
	}

	picture.Insert(s, logoPath, "C7", 64, 47, true, w.log)

	w.merge("D7:X7")
	w.put("D7", label("ACTA DE ENTREGA DE OBRA", fontTitle16, &centerNoWrap))
	w.merge("F8:Q8")
	w.put("F8", label("TENDIDO", fontTitle16, &centerNoWrap))

	for _, f := range summaryFields {
		w.put(f.LabelCell, label(f.Label, fontLabel, &centerWrap))
		if f.LabelMerge != "" {
			w.merge(f.LabelMerge)
		}
		w.merge(f.DataRange)
		w.outline(f.DataRange, mediumSide)
		w.put(startOf(f.DataRange), label(data[f.Key], fontData, &centerWrap))
	}

	w.put("D21", label("Tendido subterráneo Cables", fontSection, nil))
	w.merge("D21:H21")
	w.put("O21", label("Empalmes FO", fontSection, nil))
	w.merge("O21:R21")
	for i, text := range []string{"Si", "No", "NA"} {
		w.put(leftChecks[i]+"21", label(text, fontLabel, &centerWrap))
		w.put(rightChecks[i]+"21", label(text, fontLabel, &centerWrap))
	}

	box := sheet.AllSides(mediumSide)
	for _, item := range checklist {
		if item.Left != "" {
			f := fontChecklist
			if item.LeftBold {
				f = fontSection
			}
			w.put(fmt.Sprintf("D%d", item.Row), label(item.Left, f, nil))
			w.merge(fmt.Sprintf("D%d:H%d", item.Row, item.Row))
		}
		if item.Right != "" {
			f := fontChecklist
			if item.RightBold {
				f = fontSection
			}
			w.put(fmt.Sprintf("O%d", item.Row), label(item.Right, f, nil))
			w.merge(fmt.Sprintf("O%d:R%d", item.Row, item.Row))
		}
		if item.LeftCheck {
			for _, col := range leftChecks {
				w.border(fmt.Sprintf("%s%d", col, item.Row), box)
			}
		}
		if item.RightCheck {
			for _, col := range rightChecks {
				w.border(fmt.Sprintf("%s%d", col, item.Row), box)
			}
		}
	}

	for _, row := range []int{65, 70} {
		name := "Nombre Supervisor Contratista"
		if row == 70 {
			name = "Nombre Supervisor"
		}
		w.put(fmt.Sprintf("D%d", row), label(name, fontSection, nil))
		w.signature(fmt.Sprintf("H%d:P%d", row, row))
		w.put(fmt.Sprintf("Q%d", row), label("Firma", fontSection, &rightNoWrap))
		w.signature(fmt.Sprintf("R%d:U%d", row, row))
	}

	w.put("D72", label("OBSERVACIONES SUPERVISOR", fontSection, nil))
	w.merge("D72:H72")
	w.put("Q72", label("OBSERVACIONES CONTRALOR", fontSection, nil))
	w.merge("Q72:R72")
	for row := 74; row <= 77; row++ {
		for _, rng := range []string{fmt.Sprintf("D%d:O%d", row, row), fmt.Sprintf("P%d:W%d", row, row)} {
			w.merge(rng)
			w.edge(rng, sheet.EdgeBottom, dottedSide)
		}
	}
	w.outline("D74:O77", mediumSide)
	w.outline("P74:W77", mediumSide)

	w.put("C80", label("* Deben ser completados todos los campos de observacion, siendo responsabilidad del Supervisor Despliegue y Personal de SCM", fontFootnote, nil))
	w.merge("C80:X80")
	w.put("C82", label(`** Los campos SI (Aceptado), NO (Rechazado) y NA (No aplica) deben ser marcados con una "X".`, fontFootnote, nil))
	w.merge("C82:X82")
	w.put("C83", label("Versión 2016-09", fontVersion, nil))
	w.merge("C83:D83")

	w.outline("B2:X84", mediumSide)
	return nil
}

// writer applies fixed-position layout steps, logging and skipping failures.
type writer struct {
	s   *sheet.Sheet
	log zerolog.Logger
}

func (w *writer) put(ref string, st sheet.Style) {
	if err := w.s.ApplyStyle(ref, st); err != nil {
		w.log.Error().Err(err).Str("ref", ref).Msg("cell not written")
	}
}

func (w *writer) merge(ref string) {
	if err := w.s.MergeCells(ref); err != nil {
		w.log.Warn().Err(err).Str("range", ref).Msg("merge skipped")
	}
}

func (w *writer) border(ref string, b sheet.Border) {
	if err := w.s.SetBorder(ref, b); err != nil {
		w.log.Error().Err(err).Str("ref", ref).Msg("border skipped")
	}
}

func (w *writer) outline(ref string, side sheet.Side) {
	if err := w.s.DrawOuterBorder(ref, side); err != nil {
		w.log.Error().Err(err).Str("range", ref).Msg("border skipped")
	}
}

func (w *writer) edge(ref string, e sheet.Edge, side sheet.Side) {
	if err := w.s.DrawEdge(ref, e, side); err != nil {
		w.log.Error().Err(err).Str("range", ref).Msg("border skipped")
	}
}

func (w *writer) signature(ref string) {
	w.merge(ref)
	w.edge(ref, sheet.EdgeBottom, mediumSide)
}

func startOf(rng string) string {
	start, _, _ := strings.Cut(rng, ":")
	return start
}
