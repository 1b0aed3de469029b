package service

import (
	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(id uint, name string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Name = name
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(id uint, url string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Avatar = url
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(page, pageSize int, search string) ([]model.User, int64, error) {
	return s.users.List(page, pageSize, search)
}
