package template

import "github.com/orayew2002/acta-excel/picture"

// Photo size on the conformity forms, in centimetres.
const (
	PhotoWidthCM  = 11.85
	PhotoHeightCM = 9.9
)

// ConformityDataFields maps project detail keys to their cell on the first block.
var ConformityDataFields = map[string]string{
	"Contratista":               "E10",
	"Distrito":                  "E12",
	"Nodo":                      "E14",
	"Nombre cliente / Proyecto": "H16",
	"Direccion Cliente":         "E18",
	"Ciudad":                    "T8",
	"N° PROY/ COD: AX":          "T10",
	"Fecha Inicio":              "T12",
	"Fecha Término":             "T14",
}

// ConformityTemplate returns the layout of one "acta de conformidad" block:
// a 113 row form with header data, a 3x2 photo grid, signatures and
// observations. Each call returns a fresh value.
func ConformityTemplate() BlockTemplate {
	right := ptr(rightNoWrap)

	fixed := map[string]FixedText{
		"D10":  {Text: "Contratista", Font: fontLabel},
		"D12":  {Text: "Distrito", Font: fontLabel},
		"D14":  {Text: "Nodo", Font: fontLabel},
		"D16":  {Text: "Nombre cliente / Proyecto", Font: fontLabel},
		"D18":  {Text: "Direccion Cliente", Font: fontLabel},
		"S8":   {Text: "Ciudad", Font: fontLabel},
		"S10":  {Text: "N° PROY/ COD: AX", Font: fontLabel},
		"S12":  {Text: "Fecha Inicio", Font: fontLabel},
		"S14":  {Text: "Fecha Término", Font: fontLabel},
		"D99":  {Text: "Nombre Supervisor Contratista", Font: fontLabel},
		"D102": {Text: "Nombre Supervisor", Font: fontLabel},
		"D104": {Text: "OBSERVACIONES SUPERVISOR", Font: fontLabel},
		"Q104": {Text: "OBSERVACIONES SUPERVISOR", Font: fontLabel},
		"S99":  {Text: "Firma", Font: fontLabel, Alignment: right},
		"S102": {Text: "Firma", Font: fontLabel, Alignment: right},
		"C108": {Text: "* Deben ser completados todos los campos de observacion, siendo responsabilidad del Supervisor Despliegue y Personal de SCM", Font: fontFootnote},
		"C109": {Text: `** Los campos SI (Aceptado), NO (Rechazado) y NA (No aplica) deben ser marcados con una "X".`, Font: fontFootnote},
		"C110": {Text: "Versión 2016-09", Font: fontFootnote},
	}

	fields := make(map[string]string, len(ConformityDataFields))
	for k, v := range ConformityDataFields {
		fields[k] = v
	}

	return BlockTemplate{
		Height: 113,

		ColumnWidths: widthsFromPixels(map[string]float64{
			"A": 11, "B": 7, "C": 21, "D": 149, "E": 30, "F": 36, "G": 20, "H": 43, "I": 20, "J": 5,
			"K": 5, "L": 25, "M": 6, "N": 26, "O": 5, "P": 77, "Q": 40, "R": 13, "S": 116, "T": 103,
			"U": 25, "V": 4, "W": 25, "X": 5, "Y": 24, "Z": 24, "AA": 24, "AB": 24, "AC": 24, "AD": 24,
			"AE": 24, "AF": 24, "AG": 14, "AH": 10,
		}),
		RowHeights: map[int]float64{
			1: 13, 2: 0.1, 3: 0.1, 4: 0.1, 5: 4.5, 6: 24, 7: 20.25, 8: 15.75, 9: 4.5, 10: 15.75,
			11: 4.5, 12: 15.75, 13: 4.5, 14: 15.75, 15: 4.5, 16: 15.75, 17: 4.5, 18: 15.75,
			19: 15.75, 20: 15.75,
		},

		LogoCell:   "C6",
		LogoWidth:  64,
		LogoHeight: 47,

		TitleCell:      "B6",
		TitleFont:      fontTitle16,
		TitleAlignment: centerNoWrap,

		FixedTexts: fixed,
		Merges: []string{
			"B6:AG6", "T8:AE8", "E10:P10", "T10:Y10", "Z10:AE10", "E12:P12", "T12:Y12", "Z12:AE12",
			"E14:P14", "T14:Y14", "Z14:AE14", "D16:G16", "H16:AE16", "E18:AE18",
			"D99:G99", "H99:R99", "T99:AD99", "E102:R102", "T102:AD102", "D104:G104", "Q104:T104",
			"D105:P105", "Q105:AE105", "D106:P106", "Q106:AE106", "D107:P107", "Q107:AE107",
			"C108:AF108", "C109:AF109", "C110:AF110",
		},

		DataFields:    fields,
		DataFont:      fontData,
		DataAlignment: centerWrap,

		Photos: PhotoLayout{
			StartRow:      21,
			Stride:        26,
			Blocks:        3,
			FrameRows:     22,
			CommentRows:   2,
			SpacerRows:    2,
			FrameHeight:   12.75,
			CommentHeight: 16.75,
			SpacerHeight:  16.75,
			GutterStart:   "B",
			GutterEnd:     "C",
			Columns:       []ColumnSpan{{Start: "D", End: "P"}, {Start: "S", End: "AE"}},
			ImageWidth:    picture.CMToPixels(PhotoWidthCM),
			ImageHeight:   picture.CMToPixels(PhotoHeightCM),
		},
		CommentFont:      fontComment,
		CommentAlignment: centerWrap,

		Borders: BorderRules{
			Framed: []string{
				"T8:AE8", "E10:P10", "T10:Y10", "Z10:AE10", "E12:P12", "T12:Y12", "Z12:AE12",
				"E14:P14", "T14:Y14", "Z14:AE14", "H16:AE16", "E18:AE18",
			},
			Underlined: []string{"H99:R99", "T99:AD99", "E102:R102", "T102:AD102"},
			Dotted: []string{
				"D105:P105", "Q105:AE105", "D106:P106", "Q106:AE106", "D107:P107", "Q107:AE107",
			},
			Boxes: []string{"D105:P107", "Q105:AE107"},
		},

		Frame:     "B5:AG110",
		FrameSide: thickSide,

		TrailerRows:   []int{111, 112, 113, 114},
		TrailerHeight: 28,
	}
}
