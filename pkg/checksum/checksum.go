// Package checksum implementa el hash DJB2 (variante XOR) con el que la
// aplicación almacena las contraseñas. NO es un hash criptográfico: se
// mantiene porque los datos ya persistidos dependen de este formato exacto.
package checksum

import (
	"strconv"
	"unicode/utf16"
)

// DJB2 devuelve el hash en hexadecimal minúscula, byte a byte compatible con
// la implementación original en JavaScript (itera unidades UTF-16 y aplica
// hash = (hash*33) ^ code con aritmética módulo 2^32).
func DJB2(s string) string {
	var h uint32 = 5381
	for _, cu := range utf16.Encode([]rune(s)) {
		h = h*33 ^ uint32(cu)
	}
	return strconv.FormatUint(uint64(h), 16)
}

// Matches compara una contraseña en claro contra un hash almacenado.
func Matches(password, storedHash string) bool {
	return DJB2(password) == storedHash
}
