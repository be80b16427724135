// Package orders libro de pedidos: alta, cierre contra inventario y cancelación.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// UseCase casos de uso del libro de pedidos.
type UseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
	now      ports.Clock
	newID    ports.IDGenerator
}

// Option ajusta dependencias opcionales.
type Option func(*UseCase)

// WithClock fija el reloj usado en CreatedAt y ClosedAt.
func WithClock(c ports.Clock) Option { return func(uc *UseCase) { uc.now = c } }

// WithIDGenerator fija el generador de IDs de pedido.
func WithIDGenerator(g ports.IDGenerator) Option { return func(uc *UseCase) { uc.newID = g } }

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		txRunner: txRunner,
		log:      log.Component("orders"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Create registra un pedido Pending. No reserva inventario.
func (uc *UseCase) Create(ctx context.Context, p access.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := access.Require(p, access.ActionCreateOrder); err != nil {
		uc.log.Warn().Str("user", p.Username).Str("model", in.ModelID).Msg("alta de pedido denegada")
		return nil, err
	}
	order := &entity.Order{
		ID:        uc.newID(),
		ModelID:   in.ModelID,
		Status:    entity.OrderPending,
		CreatedAt: uc.now(),
		Customer: entity.Customer{
			Name:    strings.TrimSpace(in.CustomerName),
			Contact: strings.TrimSpace(in.Contact),
			Address: strings.TrimSpace(in.Address),
		},
		Config: entity.BikeConfig{
			Size:      in.Size,
			Color:     in.Color,
			WheelSize: in.WheelSize,
			Gears:     in.Gears,
			Brakes:    in.Brakes,
			Lights:    in.Lights,
		},
	}
	if err := order.Config.Validate(); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		model, err := tx.Bikes().Get(in.ModelID)
		if err != nil {
			return err
		}
		if model == nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownModel, in.ModelID)
		}
		return tx.Orders().Create(order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("order_id", order.ID).Str("model", order.ModelID).Msg("pedido creado")
	return toOrderResponse(order), nil
}

// Complete cierra un pedido Pending entregando una unidad sin vender de su modelo.
// Es el único camino que decrementa Unsold; pedido y stock cambian en la misma transacción.
func (uc *UseCase) Complete(ctx context.Context, p access.Principal, orderID string) (*dto.OrderResponse, error) {
	if err := access.Require(p, access.ActionCompleteOrder); err != nil {
		uc.log.Warn().Str("user", p.Username).Str("order_id", orderID).Msg("cierre de pedido denegado")
		return nil, err
	}
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		order, err := pendingOrder(tx, orderID)
		if err != nil {
			return err
		}
		model, err := tx.Bikes().Get(order.ModelID)
		if err != nil {
			return err
		}
		if model == nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownModel, order.ModelID)
		}
		if model.Unsold == 0 {
			return fmt.Errorf("%w: modelo %s", domain.ErrNoStockAvailable, order.ModelID)
		}
		model.Unsold--
		if err := tx.Bikes().Upsert(model); err != nil {
			return err
		}
		if err := order.Complete(uc.now()); err != nil {
			return err
		}
		out = order
		return tx.Orders().Update(order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("order_id", orderID).Str("model", out.ModelID).Msg("pedido completado")
	return toOrderResponse(out), nil
}

// Cancel cancela un pedido Pending; no toca el inventario.
func (uc *UseCase) Cancel(ctx context.Context, p access.Principal, orderID string) (*dto.OrderResponse, error) {
	if err := access.Require(p, access.ActionCancelOrder); err != nil {
		uc.log.Warn().Str("user", p.Username).Str("order_id", orderID).Msg("cancelación denegada")
		return nil, err
	}
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		order, err := pendingOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(uc.now()); err != nil {
			return err
		}
		out = order
		return tx.Orders().Update(order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("order_id", orderID).Msg("pedido cancelado")
	return toOrderResponse(out), nil
}

func pendingOrder(tx repository.Tx, orderID string) (*entity.Order, error) {
	order, err := tx.Orders().GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %q no existe", domain.ErrInvalidState, orderID)
	}
	if order.Status != entity.OrderPending {
		return nil, fmt.Errorf("%w: pedido %s está %s", domain.ErrInvalidState, order.ID, order.Status)
	}
	return order, nil
}

// List pedidos en orden de creación; status vacío devuelve todos.
func (uc *UseCase) List(ctx context.Context, status entity.OrderStatus) ([]dto.OrderResponse, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidArgument, status)
	}
	var orders []entity.Order
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		orders, err = tx.Orders().List()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		if status != "" && orders[i].Status != status {
			continue
		}
		out = append(out, *toOrderResponse(&orders[i]))
	}
	return out, nil
}

// Get obtiene un pedido por ID.
func (uc *UseCase) Get(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		order, err = tx.Orders().GetByID(orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %q no existe", domain.ErrInvalidArgument, orderID)
	}
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		ModelID:      o.ModelID,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		ClosedAt:     o.ClosedAt,
		CustomerName: o.Customer.Name,
		Contact:      o.Customer.Contact,
		Address:      o.Customer.Address,
		Size:         o.Config.Size,
		Color:        o.Config.Color,
		WheelSize:    o.Config.WheelSize,
		Gears:        o.Config.Gears,
		Brakes:       o.Config.Brakes,
		Lights:       o.Config.Lights,
	}
}
