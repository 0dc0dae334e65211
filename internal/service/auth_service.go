package service

import (
	"errors"
	"log"
	"time"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser 注册新用户。会员等级由管理员后续分配，新用户默认无等级。
func RegisterUser(username, password string) (*model.User, error) {
	if !GetBool(consts.ConfigAllowRegister) {
		return nil, common.NewForbiddenError("当前未开放注册")
	}

	if ok, msg := utils.ValidateUsername(username); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, common.NewValidationError(msg)
	}

	var count int64
	if err := db.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Printf("Check username error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}
	if count > 0 {
		return nil, common.NewConflictError("用户名已被占用")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash password error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}

	user := model.User{
		Username: username,
		Password: string(hashed),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Create user error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}

	return &user, nil
}

// LoginUser 校验用户名密码并签发登录 Token。
func LoginUser(username, password string) (string, *model.User, error) {
	var user model.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, common.NewUnauthorizedError("用户名或密码错误")
		}
		log.Printf("Find user error: %v\n", err)
		return "", nil, common.NewInternalError("登录失败，请稍后重试")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, common.NewUnauthorizedError("用户名或密码错误")
	}

	cfg := config.Get()
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Admin, time.Hour*time.Duration(cfg.JWT.ExpirationHours))
	if err != nil {
		log.Printf("Generate token error: %v\n", err)
		return "", nil, common.NewInternalError("登录失败，请稍后重试")
	}

	return token, &user, nil
}
