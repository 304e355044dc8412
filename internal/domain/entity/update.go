package entity

import (
	"strings"
	"time"
)

// Estados del ciclo de vida de una publicación.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusArchived = "archived"
)

// ValidStatus indica si s es uno de los tres estados del ciclo de vida.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusArchived
}

// TimestampLayout formato de las marcas de tiempo de Update: RFC3339 UTC de
// ancho fijo (nanosegundos con ceros). El orden lexicográfico de estas
// cadenas coincide con el orden cronológico, y ese es el contrato de
// ordenación de todos los listados.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// NowISO devuelve el instante actual en TimestampLayout.
func NowISO() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// ActorRef referencia al actor que ejecutó una operación.
type ActorRef struct {
	LoginID     string `json:"loginId"`
	Role        string `json:"role,omitempty"`
	AccountType string `json:"accountType,omitempty"`
}

// AckEntry confirmación de lectura de un destinatario. La existencia de la
// clave en el mapa es la señal booleana de "visto"; re-confirmar solo
// actualiza la marca de tiempo.
type AckEntry struct {
	At   string `json:"at"`
	By   string `json:"by"`
	Role string `json:"role"`
}

// Update publicación del tablón. El país es inmutable tras la creación y
// condiciona todo acceso posterior. El mapa ack solo crece: ninguna
// operación elimina entradas de otros.
type Update struct {
	ID         string              `json:"id"`
	Country    string              `json:"country"`
	HTML       string              `json:"html"`
	Text       string              `json:"text"`
	ImageURL   string              `json:"imageUrl,omitempty"`
	Status     string              `json:"status"`
	CreatedAt  string              `json:"createdAt"`
	CreatedBy  ActorRef            `json:"createdBy"`
	ApprovedAt string              `json:"approvedAt,omitempty"`
	ApprovedBy *ActorRef           `json:"approvedBy,omitempty"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
	UpdatedBy  *ActorRef           `json:"updatedBy,omitempty"`
	Ack        map[string]AckEntry `json:"ack"`
}

// Normalize repara registros heredados al cargarlos del almacén: estado
// ausente pasa a approved, html ausente se deriva escapando el texto plano y
// ack nulo se convierte en mapa vacío.
func (u *Update) Normalize() {
	if u.Status == "" {
		u.Status = StatusApproved
	}
	if u.HTML == "" && u.Text != "" {
		r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
		u.HTML = r.Replace(u.Text)
	}
	if u.Ack == nil {
		u.Ack = map[string]AckEntry{}
	}
}

// MonthKey prefijo YYYY-MM de la fecha de creación, usado por el filtro de
// exportación.
func (u *Update) MonthKey() string {
	if len(u.CreatedAt) < 7 {
		return u.CreatedAt
	}
	return u.CreatedAt[:7]
}
