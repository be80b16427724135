package snapshot_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
	"github.com/jhoicas/bikefactory/internal/infrastructure/snapshot"
)

var when = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func sampleState() *factory.State {
	s := factory.NewState(3)
	s.Users["admin"] = entity.User{Username: "admin", Credential: "$2a$hash", Role: entity.RoleAdmin}
	s.Parts["frame"] = 4
	s.Parts["wheel"] = 0
	s.Bikes["X"] = entity.BikeModel{ID: "X", Manifest: entity.Manifest{"frame": 1, "wheel": 2}, Unsold: 2}
	s.Stations[1] = []entity.WorkItem{{ID: "i1", ModelID: "X", StartedAt: when}}
	closed := when.Add(time.Hour)
	s.Orders = []entity.Order{
		{ID: "o1", ModelID: "X", Status: entity.OrderPending, CreatedAt: when,
			Customer: entity.Customer{Name: "Ana"}, Config: entity.BikeConfig{Color: "Red"}},
		{ID: "o2", ModelID: "X", Status: entity.OrderCompleted, CreatedAt: when, ClosedAt: &closed},
	}
	s.Maintenance = []entity.MaintenanceRecord{{Station: "Painting", At: when, Description: "limpieza"}}
	s.Shifts = []entity.Shift{{Employee: "Luis", Start: when, End: closed, Role: entity.RoleSales}}
	return s
}

func TestCodec_IdaYVuelta(t *testing.T) {
	codec := snapshot.JSONCodec{}
	orig := sampleState()

	data, err := codec.Encode(orig, when)
	require.NoError(t, err)
	got, err := codec.Decode(data, 3)
	require.NoError(t, err)

	assert.Equal(t, orig, got)

	again, err := codec.Encode(got, when)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestCodec_ClavesYFormato(t *testing.T) {
	data, err := snapshot.JSONCodec{}.Encode(sampleState(), time.Time{})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, k := range []string{"users", "parts", "stations", "bikes", "orders"} {
		assert.Contains(t, raw, k)
	}
	assert.NotContains(t, raw, "saved_at")
	bikes := raw["bikes"].(map[string]any)
	assert.EqualValues(t, 2, bikes["X"].(map[string]any)["unsold_count"])
}

func TestCodec_DocumentosCorruptos(t *testing.T) {
	valid := func(mut func(m map[string]any)) []byte {
		data, err := snapshot.JSONCodec{}.Encode(sampleState(), when)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		mut(m)
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return out
	}

	cases := map[string][]byte{
		"no es JSON":           []byte("{"),
		"array en la raíz":     []byte("[]"),
		"falta users":          valid(func(m map[string]any) { delete(m, "users") }),
		"orders null":          valid(func(m map[string]any) { m["orders"] = nil }),
		"parts con tipo malo":  valid(func(m map[string]any) { m["parts"] = []int{1} }),
		"pieza negativa":       valid(func(m map[string]any) { m["parts"] = map[string]int{"frame": -1} }),
		"estaciones de más":    valid(func(m map[string]any) { m["stations"] = [][]any{{}, {}, {}, {}} }),
		"rol desconocido":      valid(func(m map[string]any) { m["users"] = []map[string]string{{"username": "x", "credential": "c", "role": "Boss"}} }),
		"estado desconocido":   valid(func(m map[string]any) { m["orders"] = []map[string]string{{"id": "o", "model_id": "X", "status": "Shipped"}} }),
		"pedido sin modelo":    valid(func(m map[string]any) { m["orders"] = []map[string]string{{"id": "o", "model_id": "Z", "status": "Pending"}} }),
		"versión futura":       valid(func(m map[string]any) { m["version"] = 99 }),
		"ítem en dos lugares":  valid(func(m map[string]any) { m["stations"] = [][]map[string]string{{{"id": "a", "model_id": "X"}}, {{"id": "a", "model_id": "X"}}, {}} }),
	}
	for name, data := range cases {
		_, err := snapshot.JSONCodec{}.Decode(data, 3)
		assert.ErrorIs(t, err, domain.ErrCorruptSnapshot, name)
	}
}
