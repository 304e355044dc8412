package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
)

var _ kvstore.Store = (*Store)(nil)

// Store implementación del almacén clave-valor sobre PostgreSQL: una tabla
// jsonb con la clave como primary key. El contrato de lectura es el mismo que
// en los demás drivers: datos ausentes o corruptos degradan a false sin
// propagar el error al motor.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el almacén; EnsureSchema debe llamarse antes del primer
// uso.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS workspace_kv (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear tabla workspace_kv: %w", err)
	}
	return nil
}

func (s *Store) Read(key string, v any) bool {
	var raw []byte
	err := s.pool.QueryRow(context.Background(),
		`SELECT value FROM workspace_kv WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		// Tanto pgx.ErrNoRows como un fallo de infraestructura degradan a
		// "sin datos"; el motor trabaja con la colección vacía.
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *Store) Write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(context.Background(), `
		INSERT INTO workspace_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("escribir clave %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	_, err := s.pool.Exec(context.Background(),
		`DELETE FROM workspace_kv WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("borrar clave %s: %w", key, err)
	}
	return nil
}
