package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `client_id, first_name, last_name, corporate_name, cuit, email, cell_phone, birthdate`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// GetAll devuelve todos los clientes, sin paginación, en el orden del store.
func (r *ClientRepo) GetAll() ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return scanClients(rows)
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Add inserta un cliente nuevo; el store asigna el identificador y se escribe
// de vuelta en client.ClientID.
func (r *ClientRepo) Add(client *entity.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, corporate_name, cuit, email, cell_phone, birthdate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING client_id`
	err := r.q.QueryRow(context.Background(), query,
		client.FirstName, client.LastName, client.CorporateName,
		client.CUIT, client.Email, client.CellPhone, client.Birthdate,
	).Scan(&client.ClientID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update persiste los campos mutables del cliente (todos salvo el ID).
// No es error que la fila no haya cambiado.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, corporate_name = $4, cuit = $5,
		    email = $6, cell_phone = $7, birthdate = $8
		WHERE client_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ClientID, client.FirstName, client.LastName, client.CorporateName,
		client.CUIT, client.Email, client.CellPhone, client.Birthdate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente. El llamador ya confirmó que existe.
func (r *ClientRepo) Delete(client *entity.Client) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE client_id = $1`, client.ClientID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// SearchByName búsqueda por substring sin distinguir mayúsculas, ejecutada
// en el store vía la función search_clients (no es un filtro en memoria).
func (r *ClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), `SELECT * FROM search_clients($1)`, name)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()
	return scanClients(rows)
}

// GetConflict devuelve el primer cliente cuyo CUIT o email coincida con los
// valores dados (orden del store), o nil si no hay ninguno.
func (r *ClientRepo) GetConflict(cuit, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE cuit = $1 OR email = $2 LIMIT 1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, cuit, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conflict: %w", err)
	}
	return c, nil
}

// EmailExistsForOtherClient true si algún cliente distinto de excludeID ya usa
// el email.
func (r *ClientRepo) EmailExistsForOtherClient(email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1 AND client_id <> $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ClientID, &c.FirstName, &c.LastName, &c.CorporateName,
		&c.CUIT, &c.Email, &c.CellPhone, &c.Birthdate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClients(rows pgx.Rows) ([]*entity.Client, error) {
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ClientID, &c.FirstName, &c.LastName, &c.CorporateName,
			&c.CUIT, &c.Email, &c.CellPhone, &c.Birthdate,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
