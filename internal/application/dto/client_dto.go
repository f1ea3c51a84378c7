package dto

import "regexp"

// Patrones del formulario original: celular de 10 dígitos, CUIT NN-NNNNNNNN-N.
var (
	cellPhoneRe = regexp.MustCompile(`^\d{10}$`)
	cuitRe      = regexp.MustCompile(`^\d{2}-\d{8}-\d$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// CreateClientRequest entrada para crear un cliente. Los nombres JSON son los
// que consume el frontend (camelCase).
type CreateClientRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CorporateName string `json:"corporateName"`
	CUIT          string `json:"cuit"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellPhone"`
	Birthdate     string `json:"birthdate"` // YYYY-MM-DD
}

// InvalidFields devuelve los campos faltantes o mal formados, en orden estable.
// CUIT es opcional pero, si viene, debe cumplir el patrón.
func (r CreateClientRequest) InvalidFields() []string {
	var fields []string
	if r.FirstName == "" {
		fields = append(fields, "firstName")
	}
	if r.LastName == "" {
		fields = append(fields, "lastName")
	}
	if r.CorporateName == "" {
		fields = append(fields, "corporateName")
	}
	if r.CUIT != "" && !cuitRe.MatchString(r.CUIT) {
		fields = append(fields, "cuit")
	}
	if !emailRe.MatchString(r.Email) {
		fields = append(fields, "email")
	}
	if !cellPhoneRe.MatchString(r.CellPhone) {
		fields = append(fields, "cellPhone")
	}
	if r.Birthdate == "" {
		fields = append(fields, "birthdate")
	}
	return fields
}

// UpdateClientRequest entrada para actualizar un cliente. Incluye el ClientID
// para contrastarlo contra el id de la ruta; todos los demás campos son
// mutables y reemplazan a los guardados.
type UpdateClientRequest struct {
	ClientID      int64  `json:"clientId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CorporateName string `json:"corporateName"`
	CUIT          string `json:"cuit"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellPhone"`
	Birthdate     string `json:"birthdate"`
}

// InvalidFields mismas reglas que en la creación.
func (r UpdateClientRequest) InvalidFields() []string {
	return CreateClientRequest{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		CorporateName: r.CorporateName,
		CUIT:          r.CUIT,
		Email:         r.Email,
		CellPhone:     r.CellPhone,
		Birthdate:     r.Birthdate,
	}.InvalidFields()
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ClientID      int64  `json:"clientId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CorporateName string `json:"corporateName"`
	CUIT          string `json:"cuit"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellPhone"`
	Birthdate     string `json:"birthdate"`
}
