package usecase

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/internal/domain/sanitize"
)

// ListOptions controla qué estados entran en un listado. OwnPendingAlways
// añade las pendientes del propio actor aunque IncludePending sea false, para
// que una cuenta operation siempre vea sus borradores.
type ListOptions struct {
	IncludePending   bool
	IncludeApproved  bool
	IncludeArchived  bool
	OwnPendingAlways bool
}

// UpdateUseCase motor del ciclo de vida de las publicaciones:
// pending -> approved -> archived, con confirmaciones de lectura por
// destinatario. Todas las operaciones están limitadas al país de la sesión.
type UpdateUseCase struct {
	updates  repository.UpdateRepository
	lastRead repository.LastReadRepository

	mu sync.Mutex // serializa las secuencias leer-modificar-escribir
}

// NewUpdateUseCase construye el motor de publicaciones.
func NewUpdateUseCase(updates repository.UpdateRepository, lastRead repository.LastReadRepository) *UpdateUseCase {
	return &UpdateUseCase{updates: updates, lastRead: lastRead}
}

// Create publica una entrada nueva. El admin publica aprobado de inmediato;
// una cuenta operation crea un borrador pendiente de aprobación. Las demás
// cuentas no publican.
func (uc *UpdateUseCase) Create(ses *entity.Session, in dto.CreateUpdateRequest) (*entity.Update, error) {
	if !ses.IsAdmin() && !ses.IsOperation() {
		return nil, domain.ErrForbidden
	}
	country := entity.NormalizeCountry(ses.Country)
	if country == "" {
		return nil, fmt.Errorf("%w: la sesión no tiene país", domain.ErrInvalidInput)
	}

	// Una entrada solo de texto también rellena el canal html (escapado por el
	// saneador), para que ambos canales cuenten siempre lo mismo.
	rawHTML := in.HTML
	if strings.TrimSpace(rawHTML) == "" && strings.TrimSpace(in.Text) != "" {
		rawHTML = in.Text
	}
	html := sanitize.HTML(rawHTML)
	text := strings.TrimSpace(in.Text)
	if text == "" {
		text = strings.TrimSpace(sanitize.PlainText(html))
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if html == "" && text == "" && imageURL == "" {
		return nil, domain.ErrEmptyContent
	}

	now := entity.NowISO()
	actor := actorOf(ses)
	upd := entity.Update{
		ID:        uuid.NewString(),
		Country:   country,
		HTML:      html,
		Text:      text,
		ImageURL:  imageURL,
		Status:    entity.StatusPending,
		CreatedAt: now,
		CreatedBy: actor,
		Ack:       map[string]entity.AckEntry{},
	}
	if ses.IsAdmin() {
		upd.Status = entity.StatusApproved
		upd.ApprovedAt = now
		upd.ApprovedBy = &actor
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	all := uc.updates.List()
	// La colección se guarda de más reciente a más antigua.
	all = append([]entity.Update{upd}, all...)
	if err := uc.updates.Replace(all); err != nil {
		return nil, err
	}
	return &upd, nil
}

// Edit modifica contenido y, para el admin, también el estado. Una cuenta
// operation solo edita sus propias publicaciones mientras sigan pendientes;
// un cambio de estado pedido por quien no es admin se ignora en silencio.
func (uc *UpdateUseCase) Edit(ses *entity.Session, id string, in dto.EditUpdateRequest) (*entity.Update, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	all := uc.updates.List()
	idx := indexByID(all, id)
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	upd := all[idx]
	if entity.NormalizeCountry(upd.Country) != entity.NormalizeCountry(ses.Country) {
		return nil, domain.ErrCountryMismatch
	}

	switch {
	case ses.IsAdmin():
		// el admin edita cualquier publicación de su país
	case ses.IsOperation():
		if upd.CreatedBy.LoginID != ses.LoginID || upd.Status != entity.StatusPending {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	switch {
	case in.HTML != nil:
		upd.HTML = sanitize.HTML(*in.HTML)
		if in.Text != nil {
			upd.Text = strings.TrimSpace(*in.Text)
		} else {
			upd.Text = strings.TrimSpace(sanitize.PlainText(*in.HTML))
		}
	case in.Text != nil:
		// Un cambio solo de texto regenera el html desde el texto nuevo; si no,
		// los dos canales divergirían.
		upd.Text = strings.TrimSpace(*in.Text)
		upd.HTML = sanitize.HTML(upd.Text)
	}
	if in.ImageURL != nil {
		upd.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if in.Status != "" && ses.IsAdmin() {
		if !entity.ValidStatus(in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if in.Status == entity.StatusApproved && upd.Status != entity.StatusApproved {
			// El sello de aprobación solo se escribe en la primera transición.
			actor := actorOf(ses)
			upd.ApprovedAt = entity.NowISO()
			upd.ApprovedBy = &actor
		}
		upd.Status = in.Status
	}

	actor := actorOf(ses)
	upd.UpdatedAt = entity.NowISO()
	upd.UpdatedBy = &actor

	all[idx] = upd
	if err := uc.updates.Replace(all); err != nil {
		return nil, err
	}
	return &upd, nil
}

// Approve aprueba una publicación pendiente. Solo admin; aprobar lo ya
// aprobado es un no-op que conserva el sello original.
func (uc *UpdateUseCase) Approve(ses *entity.Session, id string) (*entity.Update, error) {
	return uc.setStatus(ses, id, entity.StatusApproved)
}

// Archive retira una publicación del tablón sin borrarla. Solo admin.
func (uc *UpdateUseCase) Archive(ses *entity.Session, id string) (*entity.Update, error) {
	return uc.setStatus(ses, id, entity.StatusArchived)
}

func (uc *UpdateUseCase) setStatus(ses *entity.Session, id, status string) (*entity.Update, error) {
	if !ses.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	all := uc.updates.List()
	idx := indexByID(all, id)
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	upd := all[idx]
	if entity.NormalizeCountry(upd.Country) != entity.NormalizeCountry(ses.Country) {
		return nil, domain.ErrCountryMismatch
	}
	if upd.Status == status {
		return &upd, nil
	}
	now := entity.NowISO()
	actor := actorOf(ses)
	if status == entity.StatusApproved && upd.ApprovedAt == "" {
		upd.ApprovedAt = now
		upd.ApprovedBy = &actor
	}
	upd.Status = status
	// Toda transición real es una edición y deja su sello.
	upd.UpdatedAt = now
	upd.UpdatedBy = &actor
	all[idx] = upd
	if err := uc.updates.Replace(all); err != nil {
		return nil, err
	}
	return &upd, nil
}

// Delete borra una publicación de forma definitiva. El admin borra cualquiera
// de su país; una cuenta operation solo las suyas pendientes.
func (uc *UpdateUseCase) Delete(ses *entity.Session, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	all := uc.updates.List()
	idx := indexByID(all, id)
	if idx == -1 {
		return domain.ErrNotFound
	}
	upd := all[idx]
	if entity.NormalizeCountry(upd.Country) != entity.NormalizeCountry(ses.Country) {
		return domain.ErrCountryMismatch
	}
	switch {
	case ses.IsAdmin():
	case ses.IsOperation():
		if upd.CreatedBy.LoginID != ses.LoginID || upd.Status != entity.StatusPending {
			return domain.ErrForbidden
		}
	default:
		return domain.ErrForbidden
	}
	all = append(all[:idx], all[idx+1:]...)
	return uc.updates.Replace(all)
}

// List devuelve las publicaciones del país del actor según opts, de más
// reciente a más antigua. El orden se decide comparando las cadenas createdAt:
// su formato de ancho fijo hace que el orden lexicográfico sea el cronológico.
func (uc *UpdateUseCase) List(ses *entity.Session, opts ListOptions) []entity.Update {
	country := entity.NormalizeCountry(ses.Country)
	var out []entity.Update
	for _, u := range uc.updates.List() {
		if entity.NormalizeCountry(u.Country) != country {
			continue
		}
		include := false
		switch u.Status {
		case entity.StatusApproved:
			include = opts.IncludeApproved
		case entity.StatusPending:
			include = opts.IncludePending ||
				(opts.OwnPendingAlways && u.CreatedBy.LoginID == ses.LoginID)
		case entity.StatusArchived:
			include = opts.IncludeArchived
		}
		if include {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ListApproved el tablón tal como lo ve un SM: solo aprobadas de su país.
func (uc *UpdateUseCase) ListApproved(ses *entity.Session) []entity.Update {
	return uc.List(ses, ListOptions{IncludeApproved: true})
}

// Get devuelve una publicación de tu país por id.
func (uc *UpdateUseCase) Get(ses *entity.Session, id string) (*entity.Update, error) {
	for _, u := range uc.updates.List() {
		if u.ID == id {
			if entity.NormalizeCountry(u.Country) != entity.NormalizeCountry(ses.Country) {
				return nil, domain.ErrCountryMismatch
			}
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Acknowledge registra la confirmación de lectura. Un SM confirma por sí
// mismo y solo sobre publicaciones aprobadas; admin y operation pueden
// confirmar en nombre de un destinatario (ack supervisado, queda anotado
// quién lo hizo). El mapa ack nunca pierde entradas: re-confirmar solo
// refresca la marca de tiempo.
func (uc *UpdateUseCase) Acknowledge(ses *entity.Session, id string, in dto.AcknowledgeRequest) (*entity.Update, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	all := uc.updates.List()
	idx := indexByID(all, id)
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	upd := all[idx]
	if entity.NormalizeCountry(upd.Country) != entity.NormalizeCountry(ses.Country) {
		return nil, domain.ErrCountryMismatch
	}

	target := strings.TrimSpace(in.Target)
	supervised := ses.IsAdmin() || ses.IsOperation()
	if !supervised {
		if upd.Status != entity.StatusApproved {
			return nil, fmt.Errorf("%w: la publicación no está aprobada", domain.ErrForbidden)
		}
		if target != "" && target != ses.LoginID {
			return nil, fmt.Errorf("%w: solo puedes confirmar por ti mismo", domain.ErrForbidden)
		}
		target = ses.LoginID
	} else if target == "" {
		target = ses.LoginID
	}

	if upd.Ack == nil {
		upd.Ack = map[string]entity.AckEntry{}
	}
	now := entity.NowISO()
	upd.Ack[target] = entity.AckEntry{
		At:   now,
		By:   ses.LoginID,
		Role: ses.Role,
	}
	// Cada confirmación también refresca updatedAt de la publicación.
	upd.UpdatedAt = now
	all[idx] = upd
	if err := uc.updates.Replace(all); err != nil {
		return nil, err
	}
	return &upd, nil
}

// LastRead marca de última lectura del actor en su país (cadena ISO, vacía si
// nunca marcó).
func (uc *UpdateUseCase) LastRead(ses *entity.Session) string {
	return uc.lastRead.Get(ses.LoginID, entity.NormalizeCountry(ses.Country))
}

// MarkAllRead adelanta la marca de última lectura al instante actual.
func (uc *UpdateUseCase) MarkAllRead(ses *entity.Session) (string, error) {
	now := entity.NowISO()
	if err := uc.lastRead.Set(ses.LoginID, entity.NormalizeCountry(ses.Country), now); err != nil {
		return "", err
	}
	return now, nil
}

// UnreadCount cuenta las aprobadas del país creadas después de la marca de
// última lectura. Sin marca previa cuentan todas.
func (uc *UpdateUseCase) UnreadCount(ses *entity.Session) dto.UnreadResponse {
	last := uc.LastRead(ses)
	count := 0
	for _, u := range uc.ListApproved(ses) {
		if last == "" || u.CreatedAt > last {
			count++
		}
	}
	return dto.UnreadResponse{Count: count, LastRead: last}
}

func indexByID(all []entity.Update, id string) int {
	for i, u := range all {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func actorOf(ses *entity.Session) entity.ActorRef {
	return entity.ActorRef{
		LoginID:     ses.LoginID,
		Role:        ses.Role,
		AccountType: ses.AccountType,
	}
}
