package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store is the data-access surface over the users table. Absent rows come
// back as (nil, nil); every method is a single statement, no transactions.
type Store interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateToken(ctx context.Context, id int64, token string) (*User, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) List(ctx context.Context) ([]User, error) {
	var users []User
	err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (s *GormStore) Get(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) Create(ctx context.Context, u *User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// UpdateToken loads first, then updates. RowsAffected alone cannot tell
// "no such row" from "token unchanged" on MySQL.
func (s *GormStore) UpdateToken(ctx context.Context, id int64, token string) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(u).Update("token", token).Error; err != nil {
		return nil, err
	}
	u.Token = token
	return u, nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
