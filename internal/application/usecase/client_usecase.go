package usecase

import (
	"time"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes: validación de entrada,
// chequeos de unicidad previos a la mutación y mapeo a DTOs.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List devuelve todos los clientes. Lista vacía no es error.
func (uc *ClientUseCase) List() ([]*dto.ClientResponse, error) {
	list, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// GetByID devuelve el cliente o nil si no existe.
func (uc *ClientUseCase) GetByID(id int64) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Search búsqueda por substring de nombre, resuelta en el store.
func (uc *ClientUseCase) Search(name string) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.SearchByName(name)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Create valida el payload, chequea colisiones de CUIT/email y persiste.
// El identificador lo asigna el store.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if fields := in.InvalidFields(); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	birthdate, err := parseBirthdate(in.Birthdate)
	if err != nil {
		return nil, &domain.ValidationError{Fields: []string{"birthdate"}}
	}

	if conflictErr, err := uc.createConflicts(in); err != nil {
		return nil, err
	} else if conflictErr != nil {
		return nil, conflictErr
	}

	client := &entity.Client{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		CorporateName: in.CorporateName,
		CUIT:          in.CUIT,
		Email:         in.Email,
		CellPhone:     in.CellPhone,
		Birthdate:     birthdate,
	}
	if err := uc.repo.Add(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// createConflicts arma el ConflictError previo al alta. Reporta email y CUIT
// a la vez cuando ambos colisionan.
func (uc *ClientUseCase) createConflicts(in dto.CreateClientRequest) (*domain.ConflictError, error) {
	existing, err := uc.repo.GetConflict(in.CUIT, in.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	var conflicts []domain.FieldConflict
	if existing.Email == in.Email {
		conflicts = append(conflicts, domain.FieldConflict{Field: "email", Value: in.Email})
	} else if taken, err := uc.repo.EmailExistsForOtherClient(in.Email, existing.ClientID); err != nil {
		return nil, err
	} else if taken {
		// El email colisiona contra otra fila distinta de la que devolvió GetConflict.
		conflicts = append(conflicts, domain.FieldConflict{Field: "email", Value: in.Email})
	}
	if in.CUIT != "" && existing.CUIT == in.CUIT {
		conflicts = append(conflicts, domain.FieldConflict{Field: "cuit", Value: in.CUIT})
	}
	if len(conflicts) == 0 {
		// GetConflict matcheó por un CUIT vacío u otro borde sin colisión real.
		return nil, nil
	}
	return &domain.ConflictError{Conflicts: conflicts}, nil
}

// Update valida que el id de la ruta coincida con el del cuerpo, chequea
// unicidad contra otros clientes y pisa los campos mutables (todos salvo el
// identificador). Devuelve nil si el cliente no existe.
func (uc *ClientUseCase) Update(id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if id != in.ClientID {
		return nil, domain.ErrIDMismatch
	}
	if fields := in.InvalidFields(); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	birthdate, err := parseBirthdate(in.Birthdate)
	if err != nil {
		return nil, &domain.ValidationError{Fields: []string{"birthdate"}}
	}

	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	var conflicts []domain.FieldConflict
	taken, err := uc.repo.EmailExistsForOtherClient(in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		conflicts = append(conflicts, domain.FieldConflict{Field: "email", Value: in.Email})
	}
	if in.CUIT != "" {
		// Solo por CUIT: incluir el email haría que la propia fila del
		// cliente (matcheada por email) tape a la dueña del CUIT.
		other, err := uc.repo.GetConflict(in.CUIT, "")
		if err != nil {
			return nil, err
		}
		if other != nil && other.ClientID != id {
			conflicts = append(conflicts, domain.FieldConflict{Field: "cuit", Value: in.CUIT})
		}
	}
	if len(conflicts) > 0 {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	mergeClient(existing, in, birthdate)
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	return toClientResponse(existing), nil
}

// Delete elimina el cliente. ErrNotFound si no existe; borrar dos veces el
// mismo id falla la segunda vez con not-found, nunca con pánico.
func (uc *ClientUseCase) Delete(id int64) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(existing)
}

// mergeClient pisa los campos mutables del registro guardado con el payload.
// Mutables: firstName, lastName, corporateName, cuit, email, cellPhone,
// birthdate. El ClientID nunca se toca.
func mergeClient(dst *entity.Client, in dto.UpdateClientRequest, birthdate time.Time) {
	dst.FirstName = in.FirstName
	dst.LastName = in.LastName
	dst.CorporateName = in.CorporateName
	dst.CUIT = in.CUIT
	dst.Email = in.Email
	dst.CellPhone = in.CellPhone
	dst.Birthdate = birthdate
}

const birthdateLayout = "2006-01-02"

// parseBirthdate acepta YYYY-MM-DD o RFC3339 (el frontend manda solo la fecha).
func parseBirthdate(s string) (time.Time, error) {
	if t, err := time.Parse(birthdateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	// Conservar el día calendario del offset original, no el del epoch UTC.
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ClientID:      c.ClientID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		CorporateName: c.CorporateName,
		CUIT:          c.CUIT,
		Email:         c.Email,
		CellPhone:     c.CellPhone,
		Birthdate:     c.Birthdate.Format(birthdateLayout),
	}
}

func toClientResponses(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}
