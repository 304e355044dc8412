package entity

import "strings"

// Grupos de calendario de turnos: cada país publica dos CSV por grupo.
const (
	ScheduleGroupSM     = "sm"
	ScheduleGroupDealer = "dealer"
)

// ValidScheduleGroup indica si g es un grupo de calendario conocido.
func ValidScheduleGroup(g string) bool {
	return g == ScheduleGroupSM || g == ScheduleGroupDealer
}

// ShiftKind clasificación semántica de una celda de turno; la capa de
// presentación decide el color.
type ShiftKind string

const (
	ShiftNone     ShiftKind = ""         // celda sin clasificar
	ShiftOff      ShiftKind = "off"      // X — día libre
	ShiftHalf     ShiftKind = "half"     // "/" — medio día
	ShiftTraining ShiftKind = "training" // sufijo "!" — formación
	ShiftSick     ShiftKind = "sick"     // s — baja
	ShiftVacation ShiftKind = "vacation" // V — vacaciones
	ShiftMorning  ShiftKind = "morning"  // 08 / 14
	ShiftEvening  ShiftKind = "evening"  // 16
	ShiftNight    ShiftKind = "night"    // 20 / 02
)

// ClassifyShift clasifica el valor crudo de una celda de día. El orden de
// las reglas importa: replica el criterio de pintado del calendario
// original (X antes que "/", sufijo "!" antes que "s", etc.).
func ClassifyShift(raw string) ShiftKind {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ShiftNone
	}
	upper := strings.ToUpper(v)
	switch {
	case strings.HasPrefix(upper, "X"):
		return ShiftOff
	case strings.HasPrefix(v, "/"):
		return ShiftHalf
	case strings.HasSuffix(v, "!"):
		return ShiftTraining
	case strings.HasPrefix(upper, "S"):
		return ShiftSick
	case upper == "V":
		return ShiftVacation
	}
	// Primer código de hora que aparezca en la celda (ocurrencia más a la
	// izquierda, como el regex original).
	codes := map[string]ShiftKind{
		"02": ShiftNight, "08": ShiftMorning, "14": ShiftMorning,
		"16": ShiftEvening, "20": ShiftNight,
	}
	for i := 0; i+2 <= len(upper); i++ {
		if k, ok := codes[upper[i:i+2]]; ok {
			return k
		}
	}
	return ShiftNone
}

// ScheduleCell celda de la tabla proyectada.
type ScheduleCell struct {
	Value string    `json:"value"`
	Kind  ShiftKind `json:"kind,omitempty"`
}

// HeaderCell celda de cabecera con la fusión ya resuelta (colspan/rowspan).
type HeaderCell struct {
	Text    string `json:"text"`
	Colspan int    `json:"colspan,omitempty"`
	Rowspan int    `json:"rowspan,omitempty"`
	Weekend bool   `json:"weekend,omitempty"`
}

// ScheduleTable tabla lista para render: dos filas de cabecera fusionadas y
// las filas de datos ya filtradas por visibilidad.
type ScheduleTable struct {
	HeaderTop    []HeaderCell     `json:"headerTop"`
	HeaderBottom []HeaderCell     `json:"headerBottom"`
	Rows         [][]ScheduleCell `json:"rows"`
}

// ScheduleBlock bloque por archivo CSV: tabla principal (días) y resumen
// (últimas columnas de totales).
type ScheduleBlock struct {
	MonthTitle string        `json:"monthTitle"`
	Main       ScheduleTable `json:"main"`
	Summary    ScheduleTable `json:"summary"`
}
