package entity

import "time"

// Client representa un cliente de la cartera (registro maestro).
type Client struct {
	ClientID      int64
	FirstName     string
	LastName      string
	CorporateName string
	CUIT          string // CUIT argentino: NN-NNNNNNNN-N, único
	Email         string // único
	CellPhone     string
	Birthdate     time.Time // solo fecha, sin hora
}
