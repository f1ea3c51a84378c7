package repository

import "github.com/jhoicas/clientes-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client. Todas las
// consultas de unicidad viven acá: la capa de endpoints nunca toca el store.
type ClientRepository interface {
	GetAll() ([]*entity.Client, error)
	GetByID(id int64) (*entity.Client, error)
	Add(client *entity.Client) error
	Update(client *entity.Client) error
	Delete(client *entity.Client) error
	SearchByName(name string) ([]*entity.Client, error)
	// GetConflict devuelve el primer cliente cuyo CUIT o email coincida
	// (orden del store), o nil si no hay colisión.
	GetConflict(cuit, email string) (*entity.Client, error)
	// EmailExistsForOtherClient true si el email ya lo usa otro cliente
	// distinto de excludeID.
	EmailExistsForOtherClient(email string, excludeID int64) (bool, error)
}
