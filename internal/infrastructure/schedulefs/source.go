// Package schedulefs sirve los calendarios de turnos desde los CSV que
// operaciones deposita en un directorio. El nombre del fichero es el
// contrato: <país>_<grupo>_schedule1.csv y <país>_<grupo>_schedule2.csv.
package schedulefs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain"
)

// EncodingLatin1 los CSV exportados por algunas hojas de cálculo llegan en
// ISO-8859-1; con esta opción se transcodifican a UTF-8 al leer.
const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

// Source implementa usecase.ScheduleSource sobre el sistema de ficheros.
type Source struct {
	dir      string
	encoding string
}

// NewSource construye la fuente. dir es el directorio de los CSV y encoding
// una de las constantes Encoding*.
func NewSource(dir, encoding string) *Source {
	if encoding == "" {
		encoding = EncodingUTF8
	}
	return &Source{dir: dir, encoding: encoding}
}

// Tables carga los dos ficheros del grupo y país pedidos, en orden fijo.
func (s *Source) Tables(group, country string) ([]usecase.ScheduleFile, error) {
	prefix := fmt.Sprintf("%s_%s_schedule", country, group)
	out := make([]usecase.ScheduleFile, 0, 2)
	for _, base := range []string{prefix + "1", prefix + "2"} {
		rows, err := s.readCSV(filepath.Join(s.dir, base+".csv"))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: no hay calendario %s", domain.ErrNotFound, base)
			}
			return nil, fmt.Errorf("leyendo %s.csv: %w", base, err)
		}
		out = append(out, usecase.ScheduleFile{Name: base, Rows: rows})
	}
	return out, nil
}

func (s *Source) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if s.encoding == EncodingLatin1 {
		reader = charmap.ISO8859_1.NewDecoder().Reader(f)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // las filas del calendario no tienen ancho uniforme
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return trimTrailingEmptyRows(rows), nil
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		empty := true
		for _, c := range last {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}
