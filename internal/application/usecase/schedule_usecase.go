package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
)

// Posiciones fijas del formato de CSV de turnos: fila 1 y 2 son cabeceras,
// los datos empiezan en la fila 3; la columna 2 es el nombre, los días van de
// la 4 a la 35 y las últimas 7 columnas son el resumen de totales.
const (
	schedNameCol      = 2
	schedDayStart     = 4
	schedDayEnd       = 34
	schedMainEnd      = 35
	schedSummaryTail  = 7
	schedDataFirstRow = 3
)

// ScheduleUseCase proyección de los calendarios de turnos. Admin y operation
// ven todas las filas; cualquier otra cuenta solo la suya, emparejada por
// nombre completo normalizado (sin diacríticos, minúsculas).
type ScheduleUseCase struct {
	accounts repository.AccountRepository
	source   ScheduleSource
}

// NewScheduleUseCase construye el caso de uso de calendarios.
func NewScheduleUseCase(accounts repository.AccountRepository, source ScheduleSource) *ScheduleUseCase {
	return &ScheduleUseCase{accounts: accounts, source: source}
}

// Get devuelve los dos bloques del grupo pedido, con la visibilidad del actor
// ya aplicada.
func (uc *ScheduleUseCase) Get(ses *entity.Session, group string) (*dto.ScheduleResponse, error) {
	if !entity.ValidScheduleGroup(group) {
		return nil, fmt.Errorf("%w: grupo de calendario desconocido", domain.ErrInvalidInput)
	}
	country := entity.NormalizeCountry(ses.Country)
	if country == "" {
		return nil, fmt.Errorf("%w: la sesión no tiene país", domain.ErrInvalidInput)
	}

	files, err := uc.source.Tables(group, country)
	if err != nil {
		return nil, err
	}

	nameFilter := ""
	if !ses.IsAdmin() && !ses.IsOperation() {
		nameFilter = normalizeName(uc.fullNameOf(ses))
	}

	blocks := make([]entity.ScheduleBlock, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, buildScheduleBlock(f, nameFilter))
	}
	return &dto.ScheduleResponse{Group: group, Country: country, Blocks: blocks}, nil
}

func (uc *ScheduleUseCase) fullNameOf(ses *entity.Session) string {
	for _, a := range uc.accounts.List() {
		if a.LoginID == ses.LoginID && a.Role == ses.Role {
			return a.FullName()
		}
	}
	// La sesión lleva copia del nombre por si la cuenta fue borrada entretanto.
	return strings.TrimSpace(strings.TrimSpace(ses.Name) + " " + strings.TrimSpace(ses.Surname))
}

func buildScheduleBlock(f ScheduleFile, nameFilter string) entity.ScheduleBlock {
	rows := f.Rows
	mainIdx := buildMainIndices(rows)
	sumIdx := buildSummaryIndices(rows)

	var dataRows [][]string
	for r := schedDataFirstRow; r < len(rows); r++ {
		if nameFilter != "" && normalizeName(cellAt(rows, r, schedNameCol)) != nameFilter {
			continue
		}
		dataRows = append(dataRows, rows[r])
	}

	title := strings.TrimSpace(cellAt(rows, 1, schedNameCol))
	if title == "" {
		title = f.Name
	}
	return entity.ScheduleBlock{
		MonthTitle: title,
		Main:       buildScheduleTable(rows, dataRows, mainIdx, true),
		Summary:    buildScheduleTable(rows, dataRows, sumIdx, false),
	}
}

// buildMainIndices columna de nombre más las de días, descartando las
// columnas de día sin cabecera ni datos (meses de menos de 31 días).
func buildMainIndices(rows [][]string) []int {
	totalCols := len(rowAt(rows, 1))
	summaryStart := totalCols - schedSummaryTail
	if summaryStart < 0 {
		summaryStart = 0
	}
	mainEnd := summaryStart - 1
	if mainEnd > schedMainEnd {
		mainEnd = schedMainEnd
	}
	base := []int{schedNameCol}
	for i := schedDayStart; i <= mainEnd; i++ {
		base = append(base, i)
	}

	keep := base[:0]
	for _, idx := range base {
		if idx < schedDayStart || idx > schedMainEnd {
			keep = append(keep, idx)
			continue
		}
		if strings.TrimSpace(cellAt(rows, 1, idx)) != "" || strings.TrimSpace(cellAt(rows, 2, idx)) != "" {
			keep = append(keep, idx)
			continue
		}
		for r := schedDataFirstRow; r < len(rows); r++ {
			if strings.TrimSpace(cellAt(rows, r, idx)) != "" {
				keep = append(keep, idx)
				break
			}
		}
	}
	return keep
}

// buildSummaryIndices columna de nombre más las últimas columnas de totales.
func buildSummaryIndices(rows [][]string) []int {
	totalCols := len(rowAt(rows, 1))
	start := totalCols - schedSummaryTail
	if start < 0 {
		start = 0
	}
	idx := []int{schedNameCol}
	for i := start; i < totalCols; i++ {
		idx = append(idx, i)
	}
	return idx
}

func buildScheduleTable(rows, dataRows [][]string, indices []int, isMain bool) entity.ScheduleTable {
	weekend := weekendPositions(rows, indices, isMain)
	top, rowspanAt := buildHeaderTop(rows, indices, weekend)
	bottom := buildHeaderBottom(rows, indices, weekend, rowspanAt)

	body := make([][]entity.ScheduleCell, 0, len(dataRows))
	for _, r := range dataRows {
		cells := make([]entity.ScheduleCell, 0, len(indices))
		for _, oi := range indices {
			v := ""
			if oi < len(r) {
				v = r[oi]
			}
			c := entity.ScheduleCell{Value: v}
			if oi >= schedDayStart && oi <= schedDayEnd {
				c.Kind = entity.ClassifyShift(v)
			}
			cells = append(cells, c)
		}
		body = append(body, cells)
	}
	return entity.ScheduleTable{HeaderTop: top, HeaderBottom: bottom, Rows: body}
}

// weekendPositions posiciones (dentro de indices) cuya segunda cabecera es un
// día de fin de semana. Solo aplica a la tabla principal.
func weekendPositions(rows [][]string, indices []int, isMain bool) map[int]bool {
	w := map[int]bool{}
	if !isMain {
		return w
	}
	for k, oi := range indices {
		if oi < schedDayStart || oi > schedMainEnd {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(cellAt(rows, 2, oi))) {
		case "sat", "saturday", "sun", "sunday":
			w[k] = true
		}
	}
	return w
}

// buildHeaderTop primera fila de cabecera con la fusión resuelta: la columna
// de nombre con segunda cabecera vacía ocupa las dos filas, y una celda con
// texto absorbe las celdas vacías que le siguen.
func buildHeaderTop(rows [][]string, indices []int, weekend map[int]bool) ([]entity.HeaderCell, map[int]bool) {
	rowspanAt := map[int]bool{}
	skip := make([]bool, len(indices))
	var out []entity.HeaderCell
	for i := 0; i < len(indices); i++ {
		if skip[i] {
			continue
		}
		oi := indices[i]
		t1 := strings.TrimSpace(cellAt(rows, 1, oi))
		if oi == schedNameCol && t1 != "" && strings.TrimSpace(cellAt(rows, 2, oi)) == "" {
			out = append(out, entity.HeaderCell{Text: t1, Rowspan: 2})
			rowspanAt[i] = true
			continue
		}
		if t1 != "" {
			colspan := 1
			for j := i + 1; j < len(indices); j++ {
				if strings.TrimSpace(cellAt(rows, 1, indices[j])) != "" {
					break
				}
				colspan++
				skip[j] = true
			}
			out = append(out, entity.HeaderCell{Text: t1, Colspan: colspan, Weekend: weekend[i]})
			continue
		}
		out = append(out, entity.HeaderCell{Weekend: weekend[i]})
	}
	return out, rowspanAt
}

func buildHeaderBottom(rows [][]string, indices []int, weekend map[int]bool, rowspanAt map[int]bool) []entity.HeaderCell {
	var out []entity.HeaderCell
	for i, oi := range indices {
		if rowspanAt[i] {
			continue
		}
		out = append(out, entity.HeaderCell{
			Text:    strings.TrimSpace(cellAt(rows, 2, oi)),
			Weekend: weekend[i],
		})
	}
	return out
}

func rowAt(rows [][]string, r int) []string {
	if r < 0 || r >= len(rows) {
		return nil
	}
	return rows[r]
}

func cellAt(rows [][]string, r, c int) string {
	row := rowAt(rows, r)
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// normalizeName clave de emparejamiento de nombres: NFD sin marcas
// diacríticas, recortada y en minúsculas ("Zofia Łoś" y "zofia los" casan).
func normalizeName(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}
