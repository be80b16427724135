// Package operations registros operativos de la fábrica: mantenimiento de estaciones,
// calendario de producción y turnos del personal.
package operations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// UseCase casos de uso operativos.
type UseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
	now      ports.Clock
}

// NewUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewUseCase(txRunner ports.TxRunner, log *logger.Logger, now ports.Clock) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{txRunner: txRunner, log: log.Component("operations"), now: now}
}

// AddMaintenance registra un mantenimiento sobre una estación configurada.
// at cero significa "ahora".
func (uc *UseCase) AddMaintenance(ctx context.Context, p access.Principal, station string, at time.Time, description string) (*dto.MaintenanceDTO, error) {
	if err := access.Require(p, access.ActionManageMaintenance); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("registro de mantenimiento denegado")
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: descripción vacía", domain.ErrInvalidArgument)
	}
	if at.IsZero() {
		at = uc.now()
	}
	rec := entity.MaintenanceRecord{Station: station, At: at, Description: description}
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if !knownStation(tx.Stations().Stations(), station) {
			return fmt.Errorf("%w: estación %q desconocida", domain.ErrInvalidArgument, station)
		}
		return tx.Operations().AddMaintenance(rec)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("station", station).Msg("mantenimiento registrado")
	return &dto.MaintenanceDTO{Station: rec.Station, At: rec.At, Description: rec.Description}, nil
}

func knownStation(stations []entity.Station, name string) bool {
	for _, st := range stations {
		if st.Name == name {
			return true
		}
	}
	return false
}

// ListMaintenance registros en orden de alta.
func (uc *UseCase) ListMaintenance(ctx context.Context) ([]dto.MaintenanceDTO, error) {
	var recs []entity.MaintenanceRecord
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		recs, err = tx.Operations().ListMaintenance()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaintenanceDTO, len(recs))
	for i, r := range recs {
		out[i] = dto.MaintenanceDTO{Station: r.Station, At: r.At, Description: r.Description}
	}
	return out, nil
}

// AddScheduledTask añade una tarea al calendario de producción.
func (uc *UseCase) AddScheduledTask(ctx context.Context, p access.Principal, at time.Time, task, notes string) (*dto.ScheduledTaskDTO, error) {
	if err := access.Require(p, access.ActionManageSchedule); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("alta en calendario denegada")
		return nil, err
	}
	task = strings.TrimSpace(task)
	if task == "" || at.IsZero() {
		return nil, fmt.Errorf("%w: la tarea necesita fecha y descripción", domain.ErrInvalidArgument)
	}
	st := entity.ScheduledTask{At: at, Task: task, Notes: strings.TrimSpace(notes)}
	if err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		return tx.Operations().AddScheduledTask(st)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Time("at", at).Msg("tarea programada")
	return &dto.ScheduledTaskDTO{At: st.At, Task: st.Task, Notes: st.Notes}, nil
}

// ListSchedule tareas en orden de alta.
func (uc *UseCase) ListSchedule(ctx context.Context) ([]dto.ScheduledTaskDTO, error) {
	var tasks []entity.ScheduledTask
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		tasks, err = tx.Operations().ListSchedule()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduledTaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = dto.ScheduledTaskDTO{At: t.At, Task: t.Task, Notes: t.Notes}
	}
	return out, nil
}

// AddShift registra el turno de un empleado.
func (uc *UseCase) AddShift(ctx context.Context, p access.Principal, shift dto.ShiftDTO) (*dto.ShiftDTO, error) {
	if err := access.Require(p, access.ActionManageShifts); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("alta de turno denegada")
		return nil, err
	}
	employee := strings.TrimSpace(shift.Employee)
	role := entity.Role(shift.Role)
	switch {
	case employee == "":
		return nil, fmt.Errorf("%w: empleado vacío", domain.ErrInvalidArgument)
	case !shift.End.After(shift.Start):
		return nil, fmt.Errorf("%w: el turno debe terminar después de empezar", domain.ErrInvalidArgument)
	case !role.Valid():
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidArgument, shift.Role)
	}
	rec := entity.Shift{Employee: employee, Start: shift.Start, End: shift.End, Role: role}
	if err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		return tx.Operations().AddShift(rec)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("employee", employee).Msg("turno registrado")
	out := toShiftDTO(rec)
	return &out, nil
}

// ListShifts turnos en orden de alta.
func (uc *UseCase) ListShifts(ctx context.Context) ([]dto.ShiftDTO, error) {
	var shifts []entity.Shift
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		shifts, err = tx.Operations().ListShifts()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShiftDTO, len(shifts))
	for i, s := range shifts {
		out[i] = toShiftDTO(s)
	}
	return out, nil
}

func toShiftDTO(s entity.Shift) dto.ShiftDTO {
	return dto.ShiftDTO{Employee: s.Employee, Start: s.Start, End: s.End, Role: string(s.Role)}
}
