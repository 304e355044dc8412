package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// csvHeader columnas del registro exportado, en el orden histórico del
// fichero que descargaba la app original.
var csvHeader = []string{
	"id", "createdAt", "status", "country", "author",
	"approvedAt", "approvedBy", "updatedAt", "image", "text", "ackCount",
}

// ExportUseCase exportación del registro de publicaciones a CSV y PDF.
// Ambas descargas son de uso exclusivo del admin.
type ExportUseCase struct {
	updates *UpdateUseCase
	pdf     UpdatesPDFGenerator
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(updates *UpdateUseCase, pdf UpdatesPDFGenerator) *ExportUseCase {
	return &ExportUseCase{updates: updates, pdf: pdf}
}

// CSV serializa el registro completo del país (todos los estados), opcionalmente
// filtrado por mes YYYY-MM de creación. Devuelve el contenido y el nombre de
// fichero sugerido.
//
// El formato replica el del exportador histórico: la cabecera va sin comillas,
// cada campo de datos va entre comillas, y las filas se unen con LF sin salto
// final.
func (uc *ExportUseCase) CSV(ses *entity.Session, month string) ([]byte, string, error) {
	rows, country, err := uc.register(ses, month)
	if err != nil {
		return nil, "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, u := range rows {
		b.WriteByte('\n')
		writeCSVRow(&b, csvRecord(u))
	}
	return []byte(b.String()), exportFilename("csv", country, month), nil
}

// PDF genera el registro en PDF con el mismo filtro de mes que CSV.
func (uc *ExportUseCase) PDF(ses *entity.Session, month string) ([]byte, string, error) {
	rows, country, err := uc.register(ses, month)
	if err != nil {
		return nil, "", err
	}
	title := "Registro de publicaciones — " + strings.ToUpper(country)
	if month != "" {
		title += " " + month
	}
	doc, err := uc.pdf.UpdatesRegister(title, rows)
	if err != nil {
		return nil, "", fmt.Errorf("generando pdf: %w", err)
	}
	return doc, exportFilename("pdf", country, month), nil
}

func (uc *ExportUseCase) register(ses *entity.Session, month string) ([]entity.Update, string, error) {
	if !ses.IsAdmin() {
		return nil, "", domain.ErrForbidden
	}
	all := uc.updates.List(ses, ListOptions{
		IncludePending:  true,
		IncludeApproved: true,
		IncludeArchived: true,
	})
	if month == "" {
		return all, entity.NormalizeCountry(ses.Country), nil
	}
	var out []entity.Update
	for _, u := range all {
		if u.MonthKey() == month {
			out = append(out, u)
		}
	}
	return out, entity.NormalizeCountry(ses.Country), nil
}

func csvRecord(u entity.Update) []string {
	approvedBy := ""
	if u.ApprovedBy != nil {
		approvedBy = u.ApprovedBy.LoginID
	}
	// La columna image es un indicador: las data URLs embebidas no caben en
	// una celda de CSV.
	image := "no"
	if u.ImageURL != "" {
		image = "yes"
	}
	return []string{
		u.ID,
		u.CreatedAt,
		u.Status,
		u.Country,
		u.CreatedBy.LoginID,
		u.ApprovedAt,
		approvedBy,
		u.UpdatedAt,
		image,
		u.Text,
		strconv.Itoa(len(u.Ack)),
	}
}

// writeCSVRow cita todos los campos, doblando las comillas internas.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

func exportFilename(ext, country, month string) string {
	name := "updates_" + country
	if month != "" {
		name += "_" + month
	}
	return name + "." + ext
}
