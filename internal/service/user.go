package service

import (
	"AssetVault/config"
	"AssetVault/internal/repo"
	"AssetVault/model"
	"AssetVault/utils"
	"context"
	"errors"
	"time"
)

// CreateUser hashes the password and creates a user. A zero quota falls
// back to the configured default.
func CreateUser(user *model.User) error {
	user.Password = utils.GetPwd(user.Password)
	if user.StorageQuota == 0 {
		user.StorageQuota = config.AppConfig.MediaQuotaBytes
	}
	if err := repo.Db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

// FindIdByUsername returns user ID by username.
func FindIdByUsername(username string) (uint64, error) {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// FindUserNameById returns username by ID.
func FindUserNameById(userId uint64) (string, error) {
	user, err := findUserById(userId)
	if err != nil {
		return "", err
	}
	return user.UserName, nil
}

func findUserById(userId uint64) (*model.User, error) {
	ctx := context.Background()
	if user, ok := utils.GetUserInfoFromCache(ctx, userId); ok {
		return user, nil
	}
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, err
	}
	_ = utils.SetUserInfoToCache(ctx, userId, &user, 10*time.Minute)
	return &user, nil
}

// IsExist checks whether a user exists.
func IsExist(username string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return &model.User{}, err
	}
	return &user, nil
}

// CheckPassword verifies a user's password.
func CheckPassword(username, password string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return err
	}
	if !utils.CheckPwd(password, user.Password) {
		return errors.New("password error")
	}
	return nil
}

// IsEmailExist checks whether an email exists.
func IsEmailExist(email string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	return nil
}

// UserQuota returns the user's storage quota in bytes.
func UserQuota(userId uint64) (int64, error) {
	user, err := findUserById(userId)
	if err != nil {
		return 0, err
	}
	if user.StorageQuota == 0 {
		return config.AppConfig.MediaQuotaBytes, nil
	}
	return user.StorageQuota, nil
}
