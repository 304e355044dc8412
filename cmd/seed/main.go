// seed puebla el almacén con datos de demostración: cuentas sm de varios
// países y unas publicaciones de ejemplo en cada estado del ciclo de vida.
//
// Uso: go run ./cmd/seed
// Respeta STORAGE_DRIVER/STORAGE_DIR; con el driver "file" escribe en ./data.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
	"github.com/amber-studios/workspace-api/internal/infrastructure/storage"
	"github.com/amber-studios/workspace-api/pkg/checksum"
	"github.com/amber-studios/workspace-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver == "postgres" {
		fmt.Fprintln(os.Stderr, "Este seeder solo soporta los drivers file y memory")
		os.Exit(1)
	}

	var kv kvstore.Store
	if cfg.Storage.Driver == "memory" {
		kv = kvstore.NewMemStore()
	} else {
		fs, err := kvstore.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
			os.Exit(1)
		}
		kv = fs
	}

	accountRepo := storage.NewAccountRepository(kv)
	updateRepo := storage.NewUpdateRepository(kv)

	accountUC := usecase.NewAccountUseCase(accountRepo)
	if _, err := accountUC.EnsureRootAdmin(); err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar admin: %v\n", err)
		os.Exit(1)
	}

	accounts := accountRepo.List()
	accounts = append(accounts, demoAccounts()...)
	if err := accountRepo.Replace(accounts); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar cuentas: %v\n", err)
		os.Exit(1)
	}

	if err := updateRepo.Replace(demoUpdates()); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar publicaciones: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sembradas %d cuentas y %d publicaciones en el driver %q\n",
		len(accounts), len(demoUpdates()), cfg.Storage.Driver)
}

func demoAccounts() []entity.Account {
	now := time.Now()
	sm := func(login, pass, name, surname, country, accType string) entity.Account {
		return entity.Account{
			Role:         entity.RoleSM,
			AccountType:  accType,
			LoginID:      login,
			PasswordHash: checksum.DJB2(pass),
			Name:         name,
			Surname:      surname,
			Country:      country,
			CreatedAt:    now,
		}
	}
	return []entity.Account{
		sm("anna.k", "1234", "Anna", "Kowalska", "pl", entity.AccountTypeSM),
		sm("piotr.n", "1234", "Piotr", "Nowak", "pl", entity.AccountTypeSM),
		sm("ops.pl", "1234", "", "", "pl", entity.AccountTypeOperation),
		sm("dealer.pl", "1234", "Marek", "Wiśniewski", "pl", entity.AccountTypeDealer),
		sm("nino.b", "1234", "Nino", "Beridze", "ge", entity.AccountTypeSM),
		sm("camila.r", "1234", "Camila", "Rojas", "co", entity.AccountTypeSM),
	}
}

func demoUpdates() []entity.Update {
	ts := func(daysAgo int) string {
		return time.Now().UTC().AddDate(0, 0, -daysAgo).Format(entity.TimestampLayout)
	}
	admin := entity.ActorRef{LoginID: entity.AdminLoginID, Role: entity.RoleAdmin}
	ops := entity.ActorRef{LoginID: "ops.pl", Role: entity.RoleSM, AccountType: entity.AccountTypeOperation}

	approved := entity.Update{
		ID:         uuid.NewString(),
		Country:    "pl",
		HTML:       "Nuevo horario de apertura desde el <b>lunes</b>.",
		Text:       "Nuevo horario de apertura desde el lunes.",
		Status:     entity.StatusApproved,
		CreatedAt:  ts(2),
		CreatedBy:  admin,
		ApprovedAt: ts(2),
		ApprovedBy: &admin,
		Ack: map[string]entity.AckEntry{
			"anna.k": {At: ts(1), By: "anna.k", Role: entity.RoleSM},
		},
	}
	pending := entity.Update{
		ID:        uuid.NewString(),
		Country:   "pl",
		HTML:      "Recordad enviar el inventario <i>antes del viernes</i>.",
		Text:      "Recordad enviar el inventario antes del viernes.",
		Status:    entity.StatusPending,
		CreatedAt: ts(1),
		CreatedBy: ops,
		Ack:       map[string]entity.AckEntry{},
	}
	archived := entity.Update{
		ID:         uuid.NewString(),
		Country:    "pl",
		HTML:       "Campaña de verano finalizada.",
		Text:       "Campaña de verano finalizada.",
		Status:     entity.StatusArchived,
		CreatedAt:  ts(30),
		CreatedBy:  admin,
		ApprovedAt: ts(30),
		ApprovedBy: &admin,
		Ack:        map[string]entity.AckEntry{},
	}
	// De más reciente a más antigua, como las mantiene el motor.
	return []entity.Update{pending, approved, archived}
}
