package usecase

import (
	"sort"
	"strings"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
)

// MatrixUseCase matriz de confirmaciones: cruza las publicaciones del país
// con el roster de SM personales para que supervisión vea quién leyó qué.
type MatrixUseCase struct {
	accounts repository.AccountRepository
	updates  *UpdateUseCase
}

// NewMatrixUseCase construye el caso de uso de la matriz.
func NewMatrixUseCase(accounts repository.AccountRepository, updates *UpdateUseCase) *MatrixUseCase {
	return &MatrixUseCase{accounts: accounts, updates: updates}
}

// SMUsers roster de destinatarios de la matriz: los SM personales del país,
// ordenados por apellido y nombre. Dealer y operation no reciben columna.
func (uc *MatrixUseCase) SMUsers(ses *entity.Session) ([]dto.SMUserResponse, error) {
	if !ses.IsAdmin() && !ses.IsOperation() {
		return nil, domain.ErrForbidden
	}
	country := entity.NormalizeCountry(ses.Country)
	var out []dto.SMUserResponse
	for _, a := range uc.accounts.List() {
		if !a.IsPersonalSM() {
			continue
		}
		if entity.NormalizeCountry(a.Country) != country {
			continue
		}
		out = append(out, dto.SMUserResponse{
			LoginID: a.LoginID,
			Name:    a.Name,
			Surname: a.Surname,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := strings.ToLower(out[i].Surname), strings.ToLower(out[j].Surname)
		if si != sj {
			return si < sj
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// SMLogins solo los logins del roster, en el mismo orden que SMUsers.
func (uc *MatrixUseCase) SMLogins(ses *entity.Session) ([]string, error) {
	users, err := uc.SMUsers(ses)
	if err != nil {
		return nil, err
	}
	logins := make([]string, 0, len(users))
	for _, u := range users {
		logins = append(logins, u.LoginID)
	}
	return logins, nil
}

// AckMatrix una fila por publicación visible y una celda por destinatario del
// roster; celda nil significa aún sin confirmar. Solo admin y operation.
func (uc *MatrixUseCase) AckMatrix(ses *entity.Session, opts ListOptions) ([]dto.AckMatrixRow, error) {
	logins, err := uc.SMLogins(ses)
	if err != nil {
		return nil, err
	}
	var rows []dto.AckMatrixRow
	for _, u := range uc.updates.List(ses, opts) {
		acks := make(map[string]*entity.AckEntry, len(logins))
		for _, login := range logins {
			if e, ok := u.Ack[login]; ok {
				entry := e
				acks[login] = &entry
			} else {
				acks[login] = nil
			}
		}
		rows = append(rows, dto.AckMatrixRow{Update: u, Acks: acks})
	}
	return rows, nil
}
