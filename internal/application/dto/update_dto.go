package dto

import "github.com/amber-studios/workspace-api/internal/domain/entity"

// CreateUpdateRequest contenido de una publicación nueva. Debe venir al menos
// un canal: html, texto plano o imagen.
type CreateUpdateRequest struct {
	HTML     string `json:"html"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

// EditUpdateRequest cambios parciales sobre una publicación. Los punteros
// distinguen "no tocar" (nil) de "poner vacío": la app original diferenciaba
// undefined de cadena vacía en imageUrl.
type EditUpdateRequest struct {
	HTML     *string `json:"html"`
	Text     *string `json:"text"`
	ImageURL *string `json:"imageUrl"`
	Status   string  `json:"status"`
}

// AcknowledgeRequest confirmación de lectura. Target solo lo pueden usar
// admin y operation para confirmar en nombre de un destinatario (ack
// supervisado); vacío significa el propio actor.
type AcknowledgeRequest struct {
	Target string `json:"target"`
}

// AckMatrixRow fila de la matriz: la publicación más el estado de
// confirmación de cada destinatario del roster (nil = aún sin confirmar).
type AckMatrixRow struct {
	Update entity.Update               `json:"update"`
	Acks   map[string]*entity.AckEntry `json:"acks"`
}

// SMUserResponse destinatario de la matriz (SM personal del país).
type SMUserResponse struct {
	LoginID string `json:"loginId"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// UnreadResponse contador de publicaciones aprobadas no leídas.
type UnreadResponse struct {
	Count    int    `json:"count"`
	LastRead string `json:"lastRead,omitempty"`
}
