package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, created_at, username, password_hash, balance, roles`

// Create создает юзера с нулевым балансом. В случае конфликта юзернейма возвращает
// ошибку domain.ErrDuplicateKey, во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, roles) VALUES ($1, $2, $3) RETURNING `+userColumns,
		args.Username, args.PasswordHash, args.Roles.Strings(),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return user, nil
}

// FindByUsername ищет юзера по его юзернейму. Возвращает ошибку domain.ErrRecordNotFound
// если запись не найдена.
func (u *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return user, nil
}

// UpdatePassword перезаписывает хеш пароля юзера.
func (u *UserRepository) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	cmdTag, err := u.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE username = $2`,
		passwordHash, username,
	)
	if err != nil {
		return convertErr(err, "updating password for %s", username)
	}
	if cmdTag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating password for %s", username)
	}
	return nil
}

// CreditBalance увеличивает баланс юзера на amount и возвращает новое значение.
func (u *UserRepository) CreditBalance(ctx context.Context, username string, amount int64) (int64, error) {
	var balance int64
	err := u.db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $2 WHERE username = $1 RETURNING balance`,
		username, amount,
	).Scan(&balance)
	if err != nil {
		return 0, convertErr(err, "crediting balance for %s", username)
	}
	return balance, nil
}

// GetAll возвращает всех юзеров, самые новые - первыми.
func (u *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := u.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, convertErr(err, "selecting users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning user")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "selecting users")
	}
	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roles []string
	if err := row.Scan(
		&user.ID, &user.CreatedAt, &user.Username, &user.PasswordHash, &user.Balance, &roles,
	); err != nil {
		return nil, err
	}
	user.Roles = domain.RolesFromStrings(roles)
	return &user, nil
}
