package entity

// Severity nivel de un insight de IA.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid indica si la severidad es una de las tres admitidas.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Insight observación generada por el asesor de IA. Solo lectura: nunca modifica los libros.
type Insight struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Action      string   `json:"action,omitempty"`
}
