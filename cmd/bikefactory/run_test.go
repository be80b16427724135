package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bikefactory/internal/domain"
)

func TestErrorCode_UnCodigoPorTipo(t *testing.T) {
	kinds := []error{
		domain.ErrUnauthorized, domain.ErrPermissionDenied, domain.ErrInvalidArgument,
		domain.ErrInsufficientStock, domain.ErrEmptyStation, domain.ErrUnknownModel,
		domain.ErrInvalidState, domain.ErrNoStockAvailable, domain.ErrCorruptSnapshot,
	}
	codes := map[string]bool{}
	exits := map[int]bool{}
	for _, k := range kinds {
		code, exit := errorCode(fmt.Errorf("contexto: %w", k))
		assert.NotEqual(t, "INTERNAL", code, k.Error())
		assert.False(t, codes[code], "código %s repetido", code)
		assert.False(t, exits[exit], "salida %d repetida", exit)
		assert.NotContains(t, []int{0, 1, 2}, exit)
		codes[code] = true
		exits[exit] = true
	}

	code, exit := errorCode(errors.New("disco lleno"))
	assert.Equal(t, "INTERNAL", code)
	assert.Equal(t, 1, exit)
}

func TestCLI_AvanceFueraDeRango(t *testing.T) {
	setupEnv(t, "file")
	worker := login(t, "worker1", "w123")

	code, _, errOut := invoke(t, "advance", "-token", worker, "-stage", "42")
	assert.Equal(t, 7, code)
	assert.Contains(t, errOut, "EMPTY_STATION")
}

func TestCLI_ExportRequiereGestionDeUsuarios(t *testing.T) {
	setupEnv(t, "file")
	sales := login(t, "sales1", "s123")

	code, out, errOut := invoke(t, "export", "-token", sales)
	assert.Equal(t, 4, code)
	assert.Contains(t, errOut, "PERMISSION_DENIED")
	assert.Empty(t, out, "no se filtran credenciales")
}
