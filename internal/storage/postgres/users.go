package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
)

const userColumns = `id, login, password_hash, phone, wallet_balance, created_at`

func (r *userRepository) Create(ctx context.Context, login, passwordHash, phone string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, phone) VALUES ($1, $2, $3) RETURNING id, wallet_balance, created_at`
	u := model.User{Login: login, PasswordHash: passwordHash, Phone: phone}
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, phone).Scan(&u.ID, &u.WalletBalance, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return r.get(ctx, query, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.get(ctx, query, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.WalletBalance, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
