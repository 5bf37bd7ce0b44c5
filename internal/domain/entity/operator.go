package entity

import "fmt"

// Roles del operador.
const (
	RoleOwner   = "Owner"
	RoleManager = "Manager"
)

// Operator identidad del operador que ejecuta una acción.
type Operator struct {
	Username string
	Name     string
	Role     string
}

// Actor texto con el que el operador firma la bitácora: "Nombre (Rol)".
func (o Operator) Actor() string {
	if o.Name == "" {
		return "System"
	}
	return fmt.Sprintf("%s (%s)", o.Name, o.Role)
}
