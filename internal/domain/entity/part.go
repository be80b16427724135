package entity

// Part representa el stock disponible de una pieza.
// Quantity nunca es negativo: el consumo falla antes de dejarlo bajo cero.
type Part struct {
	ID       string
	Quantity int
}

// Manifest cantidades de piezas por identificador (pieza -> cantidad).
type Manifest map[string]int

// Clone copia el manifiesto para no compartir el mapa.
func (m Manifest) Clone() Manifest {
	if m == nil {
		return nil
	}
	out := make(Manifest, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
