package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type DepositRepository struct {
	db uow.DBTX
}

func NewDepositRepository(db uow.DBTX) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, created_at, username, amount, bank, reference, status,
	reviewed_by, reviewed_at, decline_reason`

// Create создает заявку на пополнение в статусе pending.
func (d *DepositRepository) Create(ctx context.Context, args repoargs.CreateDeposit) (*domain.Deposit, error) {
	row := d.db.QueryRow(ctx,
		`INSERT INTO deposits (id, username, amount, bank, reference)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+depositColumns,
		args.ID, args.Username, args.Amount, args.Bank, args.Reference,
	)
	deposit, err := scanDeposit(row)
	if err != nil {
		return nil, convertErr(err, "creating deposit")
	}
	return deposit, nil
}

// GetAll возвращает все заявки, самые новые - первыми.
func (d *DepositRepository) GetAll(ctx context.Context) ([]domain.Deposit, error) {
	rows, err := d.db.Query(ctx,
		`SELECT `+depositColumns+` FROM deposits ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, convertErr(err, "selecting deposits")
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		deposit, scanErr := scanDeposit(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning deposit")
		}
		deposits = append(deposits, *deposit)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "selecting deposits")
	}
	return deposits, nil
}

// FindByIDForUpdate читает заявку с блокировкой строки. Конкурирующая проверка той же
// заявки встанет в очередь на блокировке и увидит уже финальный статус.
func (d *DepositRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Deposit, error) {
	row := d.db.QueryRow(ctx,
		`SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`,
		id,
	)
	deposit, err := scanDeposit(row)
	if err != nil {
		return nil, convertErr(err, "finding deposit %s", id)
	}
	return deposit, nil
}

// MarkReviewed проставляет финальный статус, рецензента и время решения.
// Пустая причина отклонения хранится как NULL, а не пустая строка: в JSON поле
// помечено omitempty, и подтвержденные заявки не таскают лишнюю колонку.
func (d *DepositRepository) MarkReviewed(ctx context.Context, args repoargs.ReviewDeposit) (*domain.Deposit, error) {
	row := d.db.QueryRow(ctx,
		`UPDATE deposits
		 SET status = $2, reviewed_by = $3, reviewed_at = now(), decline_reason = NULLIF($4, '')
		 WHERE id = $1
		 RETURNING `+depositColumns,
		args.ID, string(args.Status), args.ReviewedBy, args.DeclineReason,
	)
	deposit, err := scanDeposit(row)
	if err != nil {
		return nil, convertErr(err, "reviewing deposit %s", args.ID)
	}
	return deposit, nil
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var deposit domain.Deposit
	var status string
	if err := row.Scan(
		&deposit.ID, &deposit.CreatedAt, &deposit.Username, &deposit.Amount,
		&deposit.Bank, &deposit.Reference, &status,
		&deposit.ReviewedBy, &deposit.ReviewedAt, &deposit.DeclineReason,
	); err != nil {
		return nil, err
	}
	deposit.Status = domain.DepositStatus(status)
	return &deposit, nil
}
