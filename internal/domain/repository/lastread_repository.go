package repository

// LastReadRepository marca de última lectura por (login, país). Solo alimenta
// el contador de no leídos; no forma parte del dominio de consistencia del
// ciclo de vida.
type LastReadRepository interface {
	Get(loginID, country string) string
	Set(loginID, country, isoTimestamp string) error
}
