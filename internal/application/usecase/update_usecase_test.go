package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
	"github.com/amber-studios/workspace-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newUpdateUC(t *testing.T) *usecase.UpdateUseCase {
	t.Helper()
	kv := kvstore.NewMemStore()
	return usecase.NewUpdateUseCase(storage.NewUpdateRepository(kv), storage.NewLastReadRepository(kv))
}

func adminSession(country string) *entity.Session {
	return &entity.Session{ID: "s-admin", Role: entity.RoleAdmin, LoginID: "admin", Country: country}
}

func smSession(login, country string) *entity.Session {
	return &entity.Session{ID: "s-" + login, Role: entity.RoleSM, AccountType: entity.AccountTypeSM, LoginID: login, Country: country}
}

func opsSession(login, country string) *entity.Session {
	return &entity.Session{ID: "s-" + login, Role: entity.RoleSM, AccountType: entity.AccountTypeOperation, LoginID: login, Country: country}
}

func textUpdate(text string) dto.CreateUpdateRequest {
	return dto.CreateUpdateRequest{Text: text}
}

var allStates = usecase.ListOptions{
	IncludePending:  true,
	IncludeApproved: true,
	IncludeArchived: true,
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AdminPublicaAprobadoDirecto(t *testing.T) {
	uc := newUpdateUC(t)
	out, err := uc.Create(adminSession("pl"), textUpdate("aviso"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, out.Status)
	assert.NotEmpty(t, out.ApprovedAt, "el admin publica ya aprobado")
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, "admin", out.ApprovedBy.LoginID)
	assert.Equal(t, "pl", out.Country)
	assert.NotEmpty(t, out.ID)
}

func TestCreate_OperationCreaPendiente(t *testing.T) {
	uc := newUpdateUC(t)
	out, err := uc.Create(opsSession("ops.pl", "pl"), textUpdate("borrador"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, out.Status)
	assert.Empty(t, out.ApprovedAt)
	assert.Nil(t, out.ApprovedBy)
}

func TestCreate_SMNoPuedePublicar(t *testing.T) {
	uc := newUpdateUC(t)
	_, err := uc.Create(smSession("anna", "pl"), textUpdate("no"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ContenidoVacioRechazado(t *testing.T) {
	uc := newUpdateUC(t)
	_, err := uc.Create(adminSession("pl"), dto.CreateUpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	// Solo imagen sí es contenido.
	out, err := uc.Create(adminSession("pl"), dto.CreateUpdateRequest{ImageURL: "https://cdn/x.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", out.ImageURL)
}

func TestCreate_SanitizaHTMLYDerivaTexto(t *testing.T) {
	uc := newUpdateUC(t)
	out, err := uc.Create(adminSession("pl"), dto.CreateUpdateRequest{
		HTML: `<b>hola</b><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<b>hola</b>", out.HTML)
	assert.Equal(t, "hola", out.Text, "el texto plano se deriva del html")
}

func TestCreate_SoloTextoTambienRellenaHTML(t *testing.T) {
	uc := newUpdateUC(t)
	out, err := uc.Create(adminSession("pl"), textUpdate("ida & vuelta"))
	require.NoError(t, err)
	assert.Equal(t, "ida & vuelta", out.Text)
	assert.Equal(t, "ida &amp; vuelta", out.HTML,
		"el html se deriva escapando el texto, no queda vacío")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestList_OrdenDescendentePorCreacion(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	for _, txt := range []string{"primera", "segunda", "tercera"} {
		_, err := uc.Create(admin, textUpdate(txt))
		require.NoError(t, err)
	}
	got := uc.List(admin, allStates)
	require.Len(t, got, 3)
	assert.Equal(t, "tercera", got[0].Text)
	assert.Equal(t, "segunda", got[1].Text)
	assert.Equal(t, "primera", got[2].Text)
	assert.True(t, got[0].CreatedAt > got[1].CreatedAt)
}

func TestList_AislamientoPorPais(t *testing.T) {
	uc := newUpdateUC(t)
	_, err := uc.Create(adminSession("pl"), textUpdate("para polonia"))
	require.NoError(t, err)
	_, err = uc.Create(adminSession("ge"), textUpdate("para georgia"))
	require.NoError(t, err)

	pl := uc.List(adminSession("pl"), allStates)
	require.Len(t, pl, 1)
	assert.Equal(t, "para polonia", pl[0].Text)

	ge := uc.List(adminSession("ge"), allStates)
	require.Len(t, ge, 1)
	assert.Equal(t, "para georgia", ge[0].Text)
}

func TestList_SMVeSoloAprobadas(t *testing.T) {
	uc := newUpdateUC(t)
	_, err := uc.Create(adminSession("pl"), textUpdate("aprobada"))
	require.NoError(t, err)
	_, err = uc.Create(opsSession("ops.pl", "pl"), textUpdate("pendiente"))
	require.NoError(t, err)

	got := uc.ListApproved(smSession("anna", "pl"))
	require.Len(t, got, 1)
	assert.Equal(t, "aprobada", got[0].Text)
}

func TestList_OperationSiempreVeSusPendientes(t *testing.T) {
	uc := newUpdateUC(t)
	ops := opsSession("ops.pl", "pl")
	otra := opsSession("ops2.pl", "pl")
	_, err := uc.Create(ops, textUpdate("mi borrador"))
	require.NoError(t, err)
	_, err = uc.Create(otra, textUpdate("borrador ajeno"))
	require.NoError(t, err)

	got := uc.List(ops, usecase.ListOptions{IncludeApproved: true, OwnPendingAlways: true})
	require.Len(t, got, 1)
	assert.Equal(t, "mi borrador", got[0].Text)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestEdit_OperationSoloSusPendientes(t *testing.T) {
	uc := newUpdateUC(t)
	ops := opsSession("ops.pl", "pl")
	created, err := uc.Create(ops, textUpdate("v1"))
	require.NoError(t, err)

	nuevo := "v2"
	out, err := uc.Edit(ops, created.ID, dto.EditUpdateRequest{Text: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "v2", out.Text)
	require.NotNil(t, out.UpdatedBy)
	assert.Equal(t, "ops.pl", out.UpdatedBy.LoginID)

	// Tras aprobarse deja de ser editable para operation.
	_, err = uc.Approve(adminSession("pl"), created.ID)
	require.NoError(t, err)
	_, err = uc.Edit(ops, created.ID, dto.EditUpdateRequest{Text: &nuevo})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Y un borrador ajeno nunca lo fue.
	ajeno, err := uc.Create(opsSession("ops2.pl", "pl"), textUpdate("otro"))
	require.NoError(t, err)
	_, err = uc.Edit(ops, ajeno.ID, dto.EditUpdateRequest{Text: &nuevo})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEdit_CambioDeEstadoSoloAdmin(t *testing.T) {
	uc := newUpdateUC(t)
	ops := opsSession("ops.pl", "pl")
	created, err := uc.Create(ops, textUpdate("borrador"))
	require.NoError(t, err)

	// Quien no es admin no cambia el estado: se ignora en silencio.
	out, err := uc.Edit(ops, created.ID, dto.EditUpdateRequest{Status: entity.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, out.Status)

	// El admin sí, y un estado desconocido se rechaza.
	_, err = uc.Edit(adminSession("pl"), created.ID, dto.EditUpdateRequest{Status: "publicado"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	out, err = uc.Edit(adminSession("pl"), created.ID, dto.EditUpdateRequest{Status: entity.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, out.Status)
	assert.NotEmpty(t, out.ApprovedAt)
}

func TestEdit_SoloTextoRegeneraElHTML(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	created, err := uc.Create(admin, dto.CreateUpdateRequest{HTML: "<b>viejo</b>"})
	require.NoError(t, err)

	nuevo := "texto nuevo"
	out, err := uc.Edit(admin, created.ID, dto.EditUpdateRequest{Text: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "texto nuevo", out.Text)
	assert.Equal(t, "texto nuevo", out.HTML,
		"el html viejo no sobrevive a una edición solo de texto")
}

func TestEdit_PunteroNilNoTocaElCampo(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	created, err := uc.Create(admin, dto.CreateUpdateRequest{Text: "texto", ImageURL: "https://cdn/a.png"})
	require.NoError(t, err)

	vacia := ""
	out, err := uc.Edit(admin, created.ID, dto.EditUpdateRequest{ImageURL: &vacia})
	require.NoError(t, err)
	assert.Empty(t, out.ImageURL, "cadena vacía explícita borra la imagen")
	assert.Equal(t, "texto", out.Text, "los campos nil no se tocan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación, archivado y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_IdempotenteConservaSello(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	created, err := uc.Create(opsSession("ops.pl", "pl"), textUpdate("borrador"))
	require.NoError(t, err)

	first, err := uc.Approve(admin, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first.UpdatedAt, "aprobar es una edición y deja sello")
	require.NotNil(t, first.UpdatedBy)
	assert.Equal(t, "admin", first.UpdatedBy.LoginID)
	assert.Equal(t, first.ApprovedAt, first.UpdatedAt, "ambos sellos comparten instante")

	again, err := uc.Approve(admin, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ApprovedAt, again.ApprovedAt, "re-aprobar no re-sella")
	assert.Equal(t, first.UpdatedAt, again.UpdatedAt, "el no-op tampoco toca updatedAt")
	assert.Equal(t, entity.StatusApproved, again.Status)
}

func TestApprove_SoloAdminYMismoPais(t *testing.T) {
	uc := newUpdateUC(t)
	created, err := uc.Create(opsSession("ops.pl", "pl"), textUpdate("borrador"))
	require.NoError(t, err)

	_, err = uc.Approve(opsSession("ops.pl", "pl"), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Approve(adminSession("ge"), created.ID)
	assert.ErrorIs(t, err, domain.ErrCountryMismatch)
}

func TestArchive_ConservaConfirmaciones(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	created, err := uc.Create(admin, textUpdate("aviso"))
	require.NoError(t, err)
	_, err = uc.Acknowledge(smSession("anna", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)

	out, err := uc.Archive(admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusArchived, out.Status)
	assert.Contains(t, out.Ack, "anna", "archivar no pierde confirmaciones")
	require.NotNil(t, out.UpdatedBy)
	assert.Equal(t, "admin", out.UpdatedBy.LoginID, "archivar también sella la edición")
}

func TestDelete_Permisos(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	ops := opsSession("ops.pl", "pl")

	aprobada, err := uc.Create(admin, textUpdate("aprobada"))
	require.NoError(t, err)
	borrador, err := uc.Create(ops, textUpdate("borrador"))
	require.NoError(t, err)

	// SM nunca borra.
	assert.ErrorIs(t, uc.Delete(smSession("anna", "pl"), aprobada.ID), domain.ErrForbidden)
	// Operation no borra lo aprobado, ni siquiera lo propio.
	assert.ErrorIs(t, uc.Delete(ops, aprobada.ID), domain.ErrForbidden)
	// Operation sí borra su pendiente.
	require.NoError(t, uc.Delete(ops, borrador.ID))
	// El admin borra cualquiera de su país.
	require.NoError(t, uc.Delete(admin, aprobada.ID))

	assert.Empty(t, uc.List(admin, allStates))
	assert.ErrorIs(t, uc.Delete(admin, aprobada.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmaciones de lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestAcknowledge_SMConfirmaPorSiMismo(t *testing.T) {
	uc := newUpdateUC(t)
	created, err := uc.Create(adminSession("pl"), textUpdate("aviso"))
	require.NoError(t, err)

	out, err := uc.Acknowledge(smSession("anna", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)
	entry, ok := out.Ack["anna"]
	require.True(t, ok)
	assert.Equal(t, "anna", entry.By)
	assert.Equal(t, entity.RoleSM, entry.Role)
	assert.Equal(t, entry.At, out.UpdatedAt, "la confirmación refresca updatedAt")
}

func TestAcknowledge_SMNoConfirmaPendientesNiPorOtros(t *testing.T) {
	uc := newUpdateUC(t)
	pendiente, err := uc.Create(opsSession("ops.pl", "pl"), textUpdate("borrador"))
	require.NoError(t, err)
	_, err = uc.Acknowledge(smSession("anna", "pl"), pendiente.ID, dto.AcknowledgeRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	aprobada, err := uc.Create(adminSession("pl"), textUpdate("aviso"))
	require.NoError(t, err)
	_, err = uc.Acknowledge(smSession("anna", "pl"), aprobada.ID, dto.AcknowledgeRequest{Target: "piotr"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcknowledge_SupervisadoQuedaAnotado(t *testing.T) {
	uc := newUpdateUC(t)
	created, err := uc.Create(adminSession("pl"), textUpdate("aviso"))
	require.NoError(t, err)

	out, err := uc.Acknowledge(adminSession("pl"), created.ID, dto.AcknowledgeRequest{Target: "anna"})
	require.NoError(t, err)
	entry := out.Ack["anna"]
	assert.Equal(t, "admin", entry.By, "queda quién confirmó en nombre de anna")
	assert.Equal(t, entity.RoleAdmin, entry.Role)
}

func TestAcknowledge_ReconfirmarNoPierdeOtrasEntradas(t *testing.T) {
	uc := newUpdateUC(t)
	created, err := uc.Create(adminSession("pl"), textUpdate("aviso"))
	require.NoError(t, err)

	_, err = uc.Acknowledge(smSession("anna", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)
	out, err := uc.Acknowledge(smSession("piotr", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)
	out, err = uc.Acknowledge(smSession("anna", "pl"), created.ID, dto.AcknowledgeRequest{})
	require.NoError(t, err)

	assert.Len(t, out.Ack, 2)
	assert.Contains(t, out.Ack, "anna")
	assert.Contains(t, out.Ack, "piotr")
}

// ──────────────────────────────────────────────────────────────────────────────
// No leídos
// ──────────────────────────────────────────────────────────────────────────────

func TestUnread_ContadorYMarca(t *testing.T) {
	uc := newUpdateUC(t)
	admin := adminSession("pl")
	anna := smSession("anna", "pl")

	_, err := uc.Create(admin, textUpdate("uno"))
	require.NoError(t, err)
	_, err = uc.Create(admin, textUpdate("dos"))
	require.NoError(t, err)

	assert.Equal(t, 2, uc.UnreadCount(anna).Count, "sin marca previa cuentan todas")

	_, err = uc.MarkAllRead(anna)
	require.NoError(t, err)
	assert.Equal(t, 0, uc.UnreadCount(anna).Count)

	_, err = uc.Create(admin, textUpdate("tres"))
	require.NoError(t, err)
	got := uc.UnreadCount(anna)
	assert.Equal(t, 1, got.Count)
	assert.NotEmpty(t, got.LastRead)
}

func TestUnread_LasPendientesNoCuentan(t *testing.T) {
	uc := newUpdateUC(t)
	anna := smSession("anna", "pl")
	_, err := uc.Create(opsSession("ops.pl", "pl"), textUpdate("borrador"))
	require.NoError(t, err)
	assert.Equal(t, 0, uc.UnreadCount(anna).Count)
}
