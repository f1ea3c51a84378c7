package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
)

// fakeClientRepo repositorio en memoria con la misma semántica que el
// adaptador de PostgreSQL: ids asignados por el store, nil cuando no existe,
// GetConflict devuelve la primera coincidencia en orden de inserción.
type fakeClientRepo struct {
	clients []*entity.Client
	nextID  int64
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{nextID: 1}
}

func (r *fakeClientRepo) GetAll() ([]*entity.Client, error) {
	out := make([]*entity.Client, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

func (r *fakeClientRepo) GetByID(id int64) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.ClientID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Add(client *entity.Client) error {
	client.ClientID = r.nextID
	r.nextID++
	clone := *client
	r.clients = append(r.clients, &clone)
	return nil
}

func (r *fakeClientRepo) Update(client *entity.Client) error {
	for i, c := range r.clients {
		if c.ClientID == client.ClientID {
			clone := *client
			r.clients[i] = &clone
		}
	}
	return nil
}

func (r *fakeClientRepo) Delete(client *entity.Client) error {
	for i, c := range r.clients {
		if c.ClientID == client.ClientID {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	var out []*entity.Client
	needle := strings.ToLower(name)
	for _, c := range r.clients {
		haystack := strings.ToLower(c.FirstName + " " + c.LastName + " " + c.CorporateName)
		if strings.Contains(haystack, needle) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) GetConflict(cuit, email string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.CUIT == cuit || c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) EmailExistsForOtherClient(email string, excludeID int64) (bool, error) {
	for _, c := range r.clients {
		if c.Email == email && c.ClientID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func validCreate() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		FirstName:     "Juan",
		LastName:      "Perez",
		CorporateName: "Juan Corp",
		CUIT:          "20-11111111-1",
		Email:         "juan@test.com",
		CellPhone:     "1122334455",
		Birthdate:     "2024-01-01",
	}
}

func TestCreate_AsignaIDYDevuelveLosCampos(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	out, err := uc.Create(validCreate())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotZero(t, out.ClientID, "el store debe asignar un id distinto de cero")
	assert.Equal(t, "Juan", out.FirstName)
	assert.Equal(t, "juan@test.com", out.Email)
	assert.Equal(t, "2024-01-01", out.Birthdate)
}

func TestCreate_IDsUnicos(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	first, err := uc.Create(validCreate())
	require.NoError(t, err)

	second := validCreate()
	second.CUIT = "27-22222222-2"
	second.Email = "maria@test.com"
	out, err := uc.Create(second)
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientID, out.ClientID)
}

func TestCreate_CamposFaltantes_NoTocaElStore(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	in := validCreate()
	in.FirstName = ""
	in.Email = "sin-arroba"

	_, err := uc.Create(in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "firstName")
	assert.Contains(t, vErr.Fields, "email")

	stored, _ := repo.GetAll()
	assert.Empty(t, stored, "la validación se reporta antes de insertar")
}

func TestCreate_CUITMalFormado(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	in := validCreate()
	in.CUIT = "20-123-4"
	_, err := uc.Create(in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"cuit"}, vErr.Fields)
}

func TestCreate_CUITVacioEsValido(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	in := validCreate()
	in.CUIT = ""
	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.NotZero(t, out.ClientID)
}

func TestCreate_DosClientesSinCUIT_Coexisten(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	first := validCreate()
	first.CUIT = ""
	_, err := uc.Create(first)
	require.NoError(t, err)

	second := validCreate()
	second.CUIT = ""
	second.Email = "maria@test.com"
	out, err := uc.Create(second)
	require.NoError(t, err, "un CUIT vacío no participa de la unicidad")
	assert.NotZero(t, out.ClientID)

	stored, _ := repo.GetAll()
	assert.Len(t, stored, 2)
}

func TestCreate_EmailDuplicado_ReportaElEmailYNoInserta(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	in := validCreate()
	in.CUIT = "20-88888888-8" // CUIT distinto: colisiona solo el email

	_, err = uc.Create(in)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "juan@test.com")

	stored, _ := repo.GetAll()
	assert.Len(t, stored, 1, "no debe insertarse una fila nueva")
}

func TestCreate_CUITDuplicado_ReportaElCUIT(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	in := validCreate()
	in.Email = "otro@test.com" // email distinto: colisiona solo el CUIT

	_, err = uc.Create(in)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "20-11111111-1")

	stored, _ := repo.GetAll()
	assert.Len(t, stored, 1)
}

func TestCreate_EmailYCUITDuplicados_ReportaAmbos(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	_, err = uc.Create(validCreate())
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	require.Len(t, cErr.Conflicts, 2)
	assert.Contains(t, cErr.Error(), "juan@test.com")
	assert.Contains(t, cErr.Error(), "20-11111111-1")
}

func TestCreate_EmailYCUITDuplicadosEnFilasDistintas_ReportaAmbos(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	// Fila 1: dueña del CUIT. Fila 2: dueña del email.
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	second := validCreate()
	second.CUIT = "27-22222222-2"
	second.Email = "maria@test.com"
	_, err = uc.Create(second)
	require.NoError(t, err)

	in := validCreate()
	in.Email = "maria@test.com" // CUIT de la fila 1, email de la fila 2

	_, err = uc.Create(in)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "maria@test.com")
	assert.Contains(t, cErr.Error(), "20-11111111-1")
}

func TestGetByID_Inexistente_DevuelveNil(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	out, err := uc.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_IDDeRutaDistintoAlCuerpo_NoTocaElStore(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	in := dto.UpdateClientRequest{
		ClientID:      created.ClientID + 1,
		FirstName:     "Otro",
		LastName:      "Nombre",
		CorporateName: "Otra SA",
		Email:         "otro@test.com",
		CellPhone:     "1199999999",
		Birthdate:     "1990-05-05",
	}
	_, err = uc.Update(created.ClientID, in)
	require.ErrorIs(t, err, domain.ErrIDMismatch)

	stored, _ := repo.GetByID(created.ClientID)
	assert.Equal(t, "Juan", stored.FirstName, "el registro no debe mutar")
}

func TestUpdate_Inexistente_DevuelveNil(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	in := dto.UpdateClientRequest{
		ClientID:      999,
		FirstName:     "Nadie",
		LastName:      "Aqui",
		CorporateName: "N/A",
		Email:         "nadie@test.com",
		CellPhone:     "1100000000",
		Birthdate:     "1990-01-01",
	}
	out, err := uc.Update(999, in)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_PisaCamposMutablesYConservaElID(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	in := dto.UpdateClientRequest{
		ClientID:      created.ClientID,
		FirstName:     "Juana",
		LastName:      "Lopez",
		CorporateName: "Juana SRL",
		CUIT:          "20-11111111-1",
		Email:         "juana@test.com",
		CellPhone:     "1166778899",
		Birthdate:     "1985-12-31",
	}
	out, err := uc.Update(created.ClientID, in)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, created.ClientID, out.ClientID)
	assert.Equal(t, "Juana", out.FirstName)
	assert.Equal(t, "juana@test.com", out.Email)
	assert.Equal(t, "1985-12-31", out.Birthdate)

	stored, _ := repo.GetByID(created.ClientID)
	assert.Equal(t, "Juana SRL", stored.CorporateName)
}

func TestUpdate_EmailDeOtroCliente_Conflicto(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	second := validCreate()
	second.CUIT = "27-22222222-2"
	second.Email = "maria@test.com"
	created, err := uc.Create(second)
	require.NoError(t, err)

	in := dto.UpdateClientRequest{
		ClientID:      created.ClientID,
		FirstName:     "Maria",
		LastName:      "Gomez",
		CorporateName: "Maria SRL",
		CUIT:          "27-22222222-2",
		Email:         "juan@test.com", // ya lo usa el cliente 1
		CellPhone:     "1122334466",
		Birthdate:     "1990-01-01",
	}
	_, err = uc.Update(created.ClientID, in)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "juan@test.com")
}

func TestUpdate_CUITDeOtroCliente_ConservandoEmailPropio_Conflicto(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	juan, err := uc.Create(validCreate())
	require.NoError(t, err)

	maria := validCreate()
	maria.CUIT = "27-22222222-2"
	maria.Email = "maria@test.com"
	_, err = uc.Create(maria)
	require.NoError(t, err)

	// Juan conserva su email: su propia fila matchea por email y no debe
	// tapar a la dueña del CUIT.
	in := dto.UpdateClientRequest{
		ClientID:      juan.ClientID,
		FirstName:     "Juan",
		LastName:      "Perez",
		CorporateName: "Juan Corp",
		CUIT:          "27-22222222-2", // CUIT de Maria
		Email:         "juan@test.com",
		CellPhone:     "1122334455",
		Birthdate:     "2024-01-01",
	}
	_, err = uc.Update(juan.ClientID, in)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "27-22222222-2",
		"el conflicto debe nombrar el CUIT en uso")

	stored, _ := repo.GetByID(juan.ClientID)
	assert.Equal(t, "20-11111111-1", stored.CUIT, "el registro no debe mutar")
}

func TestUpdate_MismoEmailPropio_NoEsConflicto(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	in := dto.UpdateClientRequest{
		ClientID:      created.ClientID,
		FirstName:     "Juan",
		LastName:      "Perez",
		CorporateName: "Juan Corp",
		CUIT:          "20-11111111-1",
		Email:         "juan@test.com",
		CellPhone:     "1122334455",
		Birthdate:     "2024-01-01",
	}
	out, err := uc.Update(created.ClientID, in)
	require.NoError(t, err)
	require.NotNil(t, out)
}

func TestDelete_DosVeces_LaSegundaEsNotFound(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ClientID))
	err = uc.Delete(created.ClientID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_VacioNoEsError(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	out, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSearch_SubstringSinDistinguirMayusculas(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	out, err := uc.Search("PER")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Perez", out[0].LastName)
}

func TestCreate_BirthdateRFC3339_TomaLaFecha(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	in := validCreate()
	in.Birthdate = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC).Format(time.RFC3339)
	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", out.Birthdate)
}

func TestCreate_BirthdateConOffsetNegativo_ConservaElDiaCalendario(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	// 22:00 del 1 de enero en -05:00 ya es 2 de enero en UTC; vale el día
	// calendario del offset original.
	in := validCreate()
	in.Birthdate = "2024-01-01T22:00:00-05:00"
	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", out.Birthdate)
}
