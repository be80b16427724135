package catalogfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/infrastructure/catalogfile"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAMLConservaMayusculas(t *testing.T) {
	path := write(t, "catalog.yaml", `
stations:
  - name: Cut
    manifest:
      - part: Carbon Tube
        qty: 2
  - name: Finish
parts:
  - id: Carbon Tube
    quantity: 10
  - id: Wheels
    quantity: 4
models:
  - id: Racer
    manifest:
      - part: Carbon Tube
        qty: 1
      - part: Wheels
        qty: 2
`)
	cat, err := catalogfile.Load(path)
	require.NoError(t, err)

	require.Len(t, cat.Stations, 2)
	assert.Equal(t, entity.Manifest{"Carbon Tube": 2}, cat.Stations[0].Manifest)
	assert.Nil(t, cat.Stations[1].Manifest)
	assert.Equal(t, map[string]int{"Carbon Tube": 10, "Wheels": 4}, cat.Parts)
	assert.Equal(t, entity.Manifest{"Carbon Tube": 1, "Wheels": 2}, cat.Models["Racer"])
	assert.Len(t, cat.Users, 4, "sin sección users se usan los por defecto")
}

func TestLoad_JSONConUsuarios(t *testing.T) {
	path := write(t, "catalog.json", `{
  "users": [{"username": "boss", "password": "x", "role": "Admin"}]
}`)
	cat, err := catalogfile.Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Users, 1)
	assert.Equal(t, entity.RoleAdmin, cat.Users[0].Role)
	assert.Len(t, cat.Stations, 10)
}

func TestLoad_Errores(t *testing.T) {
	_, err := catalogfile.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	path := write(t, "bad.yaml", `
models:
  - id: Ghost
    manifest:
      - part: Unobtainium
        qty: 1
`)
	_, err = catalogfile.Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
