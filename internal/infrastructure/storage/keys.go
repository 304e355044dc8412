// Package storage implementa los puertos de repositorio sobre el almacén
// clave-valor. Las claves conservan los nombres del almacén original para
// poder importar datos exportados de la aplicación previa.
package storage

const (
	keyUsers    = "AH_USERS_V1"
	keyUpdates  = "AH_UPDATES_V1"
	keySessions = "AH_SESSION_V1"

	lastReadKeyPrefix = "AH_UPDATES_LASTREAD_V1_"
)
