// Package catalogfile lee el catálogo de la fábrica desde un archivo YAML o JSON con Viper.
//
// Viper pasa las claves de mapas a minúsculas, por eso los identificadores (piezas,
// modelos, usuarios) van siempre como valores dentro de listas y nunca como claves.
package catalogfile

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/catalog"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
)

type lineFile struct {
	Part string `mapstructure:"part"`
	Qty  int    `mapstructure:"qty"`
}

type stationFile struct {
	Name     string     `mapstructure:"name"`
	Manifest []lineFile `mapstructure:"manifest"`
}

type partFile struct {
	ID       string `mapstructure:"id"`
	Quantity int    `mapstructure:"quantity"`
}

type modelFile struct {
	ID       string     `mapstructure:"id"`
	Manifest []lineFile `mapstructure:"manifest"`
}

type userFile struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

type file struct {
	Stations []stationFile `mapstructure:"stations"`
	Parts    []partFile    `mapstructure:"parts"`
	Models   []modelFile   `mapstructure:"models"`
	Users    []userFile    `mapstructure:"users"`
}

// Load lee path (extensión .yaml, .yml o .json) y devuelve el catálogo validado.
// Las secciones ausentes se toman del catálogo por defecto.
func Load(path string) (*catalog.Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catalog: leer %s: %w", path, err)
	}
	var f file
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("%w: catálogo %s: %v", domain.ErrInvalidArgument, path, err)
	}
	cat := f.toCatalog(catalog.Default())
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (f *file) toCatalog(def *catalog.Catalog) *catalog.Catalog {
	out := *def
	if len(f.Stations) > 0 {
		out.Stations = make([]entity.Station, len(f.Stations))
		for i, st := range f.Stations {
			out.Stations[i] = entity.Station{Name: st.Name, Manifest: manifest(st.Manifest)}
		}
	}
	if len(f.Parts) > 0 {
		out.Parts = make(map[string]int, len(f.Parts))
		for _, p := range f.Parts {
			out.Parts[p.ID] += p.Quantity
		}
	}
	if len(f.Models) > 0 {
		out.Models = make(map[string]entity.Manifest, len(f.Models))
		for _, m := range f.Models {
			out.Models[m.ID] = manifest(m.Manifest)
		}
	}
	if len(f.Users) > 0 {
		out.Users = make([]catalog.SeedUser, len(f.Users))
		for i, u := range f.Users {
			out.Users[i] = catalog.SeedUser{Username: u.Username, Password: u.Password, Role: entity.Role(u.Role)}
		}
	}
	return &out
}

func manifest(lines []lineFile) entity.Manifest {
	if len(lines) == 0 {
		return nil
	}
	m := make(entity.Manifest, len(lines))
	for _, l := range lines {
		m[l.Part] += l.Qty
	}
	return m
}
