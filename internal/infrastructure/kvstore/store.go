// Package kvstore define el almacén clave-valor que respalda toda la
// persistencia de la aplicación (el análogo del localStorage original) y sus
// implementaciones en memoria y sobre ficheros.
package kvstore

// Store contrato mínimo que exige el núcleo: lecturas y escrituras síncronas
// de valores JSON. Read nunca propaga corrupción: si la clave falta o el
// contenido no es deserializable devuelve false y deja v en su valor por
// defecto, de modo que el motor degrada a colecciones vacías.
type Store interface {
	Read(key string, v any) bool
	Write(key string, v any) error
	Delete(key string) error
}
