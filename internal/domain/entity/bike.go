package entity

// BikeModel modelo de bicicleta con su receta de piezas y las unidades ensambladas sin vender.
type BikeModel struct {
	ID       string
	Manifest Manifest // piezas necesarias para ensamblar una unidad
	Unsold   int
}

// Clone devuelve una copia profunda del modelo.
func (b BikeModel) Clone() BikeModel {
	b.Manifest = b.Manifest.Clone()
	return b
}
