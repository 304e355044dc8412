package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// fakePDF captura la llamada al generador sin producir un PDF real.
type fakePDF struct {
	title string
	count int
}

func (f *fakePDF) UpdatesRegister(title string, updates []entity.Update) ([]byte, error) {
	f.title = title
	f.count = len(updates)
	return []byte("%PDF-fake"), nil
}

func newExportUC(t *testing.T) (*usecase.UpdateUseCase, *usecase.ExportUseCase, *fakePDF) {
	t.Helper()
	updateUC := newUpdateUC(t)
	pdf := &fakePDF{}
	return updateUC, usecase.NewExportUseCase(updateUC, pdf), pdf
}

func TestExportCSV_FormatoYCabecera(t *testing.T) {
	updateUC, exportUC, _ := newExportUC(t)
	admin := adminSession("pl")
	created, err := updateUC.Create(admin, textUpdate(`texto con "comillas"`))
	require.NoError(t, err)
	_, err = updateUC.Acknowledge(smSession("anna", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)

	data, filename, err := exportUC.CSV(admin, "")
	require.NoError(t, err)
	assert.Equal(t, "updates_pl.csv", filename)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2, "cabecera más una fila, sin salto final")
	assert.Equal(t,
		"id,createdAt,status,country,author,approvedAt,approvedBy,updatedAt,image,text,ackCount",
		lines[0], "la cabecera va sin comillas; solo los datos se citan")
	assert.Contains(t, lines[1], `"texto con ""comillas"""`, "las comillas internas se doblan")
	assert.Contains(t, lines[1], `"approved"`)
	assert.Contains(t, lines[1], `,"no",`, "sin imagen la columna image exporta el indicador")
	assert.True(t, strings.HasSuffix(lines[1], `,"1"`), "la última columna es el número de confirmaciones")
}

func TestExportCSV_ColumnaImageEsIndicador(t *testing.T) {
	updateUC, exportUC, _ := newExportUC(t)
	admin := adminSession("pl")
	req := textUpdate("con imagen")
	req.ImageURL = "data:image/png;base64,AAAA"
	_, err := updateUC.Create(admin, req)
	require.NoError(t, err)

	data, _, err := exportUC.CSV(admin, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), `,"yes",`, "una imagen embebida exporta yes, no la data URL")
	assert.NotContains(t, string(data), "base64", "la data URL nunca entra en el CSV")
}

func TestExportCSV_FiltroPorMes(t *testing.T) {
	updateUC, exportUC, _ := newExportUC(t)
	admin := adminSession("pl")
	created, err := updateUC.Create(admin, textUpdate("de este mes"))
	require.NoError(t, err)

	data, filename, err := exportUC.CSV(admin, created.MonthKey())
	require.NoError(t, err)
	assert.Equal(t, "updates_pl_"+created.MonthKey()+".csv", filename)
	assert.Contains(t, string(data), "de este mes")

	vacio, _, err := exportUC.CSV(admin, "1999-01")
	require.NoError(t, err)
	lines := strings.Split(string(vacio), "\n")
	assert.Len(t, lines, 1, "un mes sin publicaciones exporta solo la cabecera")
}

func TestExportCSV_IncluyeTodosLosEstados(t *testing.T) {
	updateUC, exportUC, _ := newExportUC(t)
	admin := adminSession("pl")
	_, err := updateUC.Create(admin, textUpdate("aprobada"))
	require.NoError(t, err)
	_, err = updateUC.Create(opsSession("ops.pl", "pl"), textUpdate("pendiente"))
	require.NoError(t, err)

	data, _, err := exportUC.CSV(admin, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pending"`)
	assert.Contains(t, string(data), `"approved"`)
}

func TestExport_SoloAdmin(t *testing.T) {
	_, exportUC, _ := newExportUC(t)
	_, _, err := exportUC.CSV(smSession("anna", "pl"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, _, err = exportUC.PDF(opsSession("ops.pl", "pl"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportPDF_DelegaEnElGenerador(t *testing.T) {
	updateUC, exportUC, pdf := newExportUC(t)
	admin := adminSession("pl")
	_, err := updateUC.Create(admin, textUpdate("aviso"))
	require.NoError(t, err)

	data, filename, err := exportUC.PDF(admin, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, "updates_pl.pdf", filename)
	assert.Equal(t, 1, pdf.count)
	assert.Contains(t, pdf.title, "PL")
}
