package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrIDMismatch   = errors.New("el id de la ruta no coincide con el del cuerpo")
)

// ValidationError lista los campos que no pasaron la validación de entrada.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos o faltantes: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FieldConflict un valor único que ya está en uso por otro cliente.
type FieldConflict struct {
	Field string // "email" o "cuit"
	Value string
}

// ConflictError indica qué valores únicos colisionaron. Si email y CUIT
// colisionan a la vez se reportan ambos.
type ConflictError struct {
	Conflicts []FieldConflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("ya existe un cliente con %s %s", c.Field, c.Value))
	}
	return strings.Join(parts, "; ")
}

func (e *ConflictError) Unwrap() error { return ErrDuplicate }
