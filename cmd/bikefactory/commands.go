package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
)

type execFunc = func(ctx context.Context, a *app, p access.Principal) (any, error)

var commands = map[string]command{
	"login": {summary: "inicia sesión e imprime el token", public: true, flags: func(fs *flag.FlagSet) execFunc {
		user := fs.String("u", "", "usuario")
		pass := fs.String("p", "", "contraseña")
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.auth.LoginWithToken(ctx, *user, *pass)
		}
	}},
	"whoami": {summary: "usuario y rol de la sesión", flags: func(fs *flag.FlagSet) execFunc {
		return func(_ context.Context, _ *app, p access.Principal) (any, error) {
			return dto.UserResponse{Username: p.Username, Role: string(p.Role)}, nil
		}
	}},
	"status": {summary: "resumen de línea, pedidos e inventario", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.dashboard.Summary(ctx)
		}
	}},
	"report": {summary: "pedidos por modelo", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.dashboard.OrdersByModel(ctx)
		}
	}},

	// ── Inventario ────────────────────────────────────────────────────────────
	"parts": {summary: "stock de piezas (-low para sugerencias de reposición)", flags: func(fs *flag.FlagSet) execFunc {
		low := fs.Bool("low", false, "solo piezas con stock bajo")
		threshold := fs.Int("threshold", -1, "umbral de stock bajo (por defecto INVENTORY_LOW_STOCK_THRESHOLD)")
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			if !*low {
				return a.inventory.ListParts(ctx)
			}
			th := *threshold
			if th < 0 {
				th = a.cfg.Inventory.LowStockThreshold
			}
			return a.inventory.LowStock(ctx, th)
		}
	}},
	"replenish": {summary: "repone una pieza", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		part := fs.String("part", "", "pieza")
		amount := fs.Int("amount", 0, "cantidad a sumar")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.inventory.Replenish(ctx, p, *part, *amount)
		}
	}},

	// ── Producción ────────────────────────────────────────────────────────────
	"stations": {summary: "estado de la línea de producción", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.production.Stations(ctx)
		}
	}},
	"start": {summary: "inicia un ítem de un modelo en la primera estación", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		model := fs.String("model", "", "modelo de bicicleta")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.production.StartItem(ctx, p, *model)
		}
	}},
	"advance": {summary: "avanza el ítem más antiguo de una estación", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		stage := fs.Int("stage", -1, "índice de estación (0..N-1)")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.production.Advance(ctx, p, *stage)
		}
	}},
	"assemble": {summary: "ensambla una bicicleta consumiendo su manifiesto", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		model := fs.String("model", "", "modelo de bicicleta")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.production.CompleteAssembly(ctx, p, *model)
		}
	}},
	"bikes": {summary: "inventario de bicicletas por modelo", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.production.Bikes(ctx)
		}
	}},

	// ── Pedidos ───────────────────────────────────────────────────────────────
	"order-create": {summary: "crea un pedido", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		var in dto.CreateOrderRequest
		fs.StringVar(&in.ModelID, "model", "", "modelo de bicicleta")
		fs.StringVar(&in.CustomerName, "customer", "", "nombre del cliente")
		fs.StringVar(&in.Contact, "contact", "", "contacto")
		fs.StringVar(&in.Address, "address", "", "dirección de entrega")
		fs.StringVar(&in.Size, "size", "", "talla")
		fs.StringVar(&in.Color, "color", "", "color")
		fs.StringVar(&in.WheelSize, "wheel", "", "tamaño de rueda")
		fs.StringVar(&in.Gears, "gears", "", "cambios")
		fs.StringVar(&in.Brakes, "brakes", "", "frenos")
		fs.StringVar(&in.Lights, "lights", "", "luces")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.orders.Create(ctx, p, in)
		}
	}},
	"order-complete": {summary: "completa un pedido contra el inventario", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		id := fs.String("id", "", "ID del pedido")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.orders.Complete(ctx, p, *id)
		}
	}},
	"order-cancel": {summary: "cancela un pedido pendiente", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		id := fs.String("id", "", "ID del pedido")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.orders.Cancel(ctx, p, *id)
		}
	}},
	"orders": {summary: "lista pedidos (-status para filtrar)", flags: func(fs *flag.FlagSet) execFunc {
		status := fs.String("status", "", "Pending | Completed | Cancelled")
		id := fs.String("id", "", "muestra un solo pedido")
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			if *id != "" {
				return a.orders.Get(ctx, *id)
			}
			return a.orders.List(ctx, entity.OrderStatus(*status))
		}
	}},

	// ── Usuarios ──────────────────────────────────────────────────────────────
	"users": {summary: "lista usuarios", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.auth.ListUsers(ctx)
		}
	}},
	"user-add": {summary: "crea un usuario", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		user := fs.String("u", "", "usuario")
		pass := fs.String("p", "", "contraseña")
		role := fs.String("role", "", "Admin | ProductionWorker | InventoryManager | Sales")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return a.auth.CreateUser(ctx, p, *user, *pass, entity.Role(*role))
		}
	}},
	"user-del": {summary: "elimina un usuario", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		user := fs.String("u", "", "usuario")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			return nil, a.auth.DeleteUser(ctx, p, *user)
		}
	}},

	// ── Operaciones ───────────────────────────────────────────────────────────
	"maintenance-add": {summary: "registra un mantenimiento de estación", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		station := fs.String("station", "", "nombre de la estación")
		desc := fs.String("desc", "", "descripción")
		at := fs.String("at", "", "fecha RFC3339 (por defecto ahora)")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			when, err := parseTime("at", *at, false)
			if err != nil {
				return nil, err
			}
			return a.operations.AddMaintenance(ctx, p, *station, when, *desc)
		}
	}},
	"maintenance": {summary: "lista mantenimientos", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.operations.ListMaintenance(ctx)
		}
	}},
	"schedule-add": {summary: "programa una tarea de producción", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		at := fs.String("at", "", "fecha RFC3339")
		task := fs.String("task", "", "tarea")
		notes := fs.String("notes", "", "notas")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			when, err := parseTime("at", *at, true)
			if err != nil {
				return nil, err
			}
			return a.operations.AddScheduledTask(ctx, p, when, *task, *notes)
		}
	}},
	"schedule": {summary: "lista el calendario", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.operations.ListSchedule(ctx)
		}
	}},
	"shift-add": {summary: "registra un turno", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		employee := fs.String("employee", "", "empleado")
		start := fs.String("start", "", "inicio RFC3339")
		end := fs.String("end", "", "fin RFC3339")
		role := fs.String("role", "", "rol del turno")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			from, err := parseTime("start", *start, true)
			if err != nil {
				return nil, err
			}
			to, err := parseTime("end", *end, true)
			if err != nil {
				return nil, err
			}
			return a.operations.AddShift(ctx, p, dto.ShiftDTO{Employee: *employee, Start: from, End: to, Role: *role})
		}
	}},
	"shifts": {summary: "lista turnos", flags: func(fs *flag.FlagSet) execFunc {
		return func(ctx context.Context, a *app, _ access.Principal) (any, error) {
			return a.operations.ListShifts(ctx)
		}
	}},

	// ── Snapshot ──────────────────────────────────────────────────────────────
	"export": {summary: "escribe el snapshot JSON (stdout o -o)", flags: func(fs *flag.FlagSet) execFunc {
		out := fs.String("o", "", "archivo de salida")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			// el snapshot incluye las credenciales de todos los usuarios
			if err := access.Require(p, access.ActionManageUsers); err != nil {
				return nil, err
			}
			data, err := a.snapshot.Save(ctx)
			if err != nil {
				return nil, err
			}
			if *out == "" {
				return data, nil
			}
			return nil, os.WriteFile(*out, data, 0o600)
		}
	}},
	"import": {summary: "reemplaza la sesión con un snapshot JSON (-i)", mutates: true, flags: func(fs *flag.FlagSet) execFunc {
		in := fs.String("i", "", "archivo de entrada")
		return func(ctx context.Context, a *app, p access.Principal) (any, error) {
			// importar reemplaza también los usuarios
			if err := access.Require(p, access.ActionManageUsers); err != nil {
				return nil, err
			}
			if err := required("i", *in); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(*in)
			if err != nil {
				return nil, err
			}
			return nil, a.snapshot.Load(ctx, data)
		}
	}},
}

func parseTime(name, value string, mandatory bool) (time.Time, error) {
	if value == "" {
		if mandatory {
			return time.Time{}, required(name, value)
		}
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: -%s %q no es RFC3339", domain.ErrInvalidArgument, name, value)
	}
	return t, nil
}
