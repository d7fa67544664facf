package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, created_at, username, package_id, package_name, price, login, note, status`

// Create создает заказ в статусе pending.
func (o *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := o.db.QueryRow(ctx,
		`INSERT INTO orders (id, username, package_id, package_name, price, login, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+orderColumns,
		args.ID, args.Username, args.PackageID, args.PackageName, args.Price, args.Login, args.Note,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order")
	}
	return order, nil
}

// GetAll возвращает все заказы, самые новые - первыми.
func (o *OrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	return o.selectOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`,
	)
}

// GetByUsername возвращает заказы юзера, самые новые - первыми.
func (o *OrderRepository) GetByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	return o.selectOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE username = $1 ORDER BY created_at DESC, id DESC`,
		username,
	)
}

func (o *OrderRepository) selectOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "selecting orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "selecting orders")
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(
		&order.ID, &order.CreatedAt, &order.Username, &order.PackageID,
		&order.PackageName, &order.Price, &order.Login, &order.Note, &status,
	); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	return &order, nil
}
