package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/mis_backend/config"
	"bitbucket.org/mmdatafocus/mis_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	Role      UserRole  `gorm:"type:enum('ADMIN', 'IPS', 'TRIO');default:'IPS'" json:"role"`
	IsActive  *bool     `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

/*
caches:
	User:$username
	Token:$token
	Tokens:$username
*/

func (user User) RemoveInstanceRedis() error {
	if err := config.RemoveRedisKey("User:" + user.Username); err != nil {
		return err
	}
	return nil
}

type LoginInfo struct {
	Token     string    `json:"token"`
	ApiToken  string    `json:"api_token,omitempty"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Companies []Company `json:"companies"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {

	db := config.GetDB()
	var err error
	var result LoginInfo

	user := User{}

	// get User info
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return &result, err
	}
	if !exists {
		err = db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error

		if err != nil {
			return &result, errors.New("invalid username or password")
		}
	}

	// check login credentials. Any comparison failure rejects, a
	// corrupted stored hash included.
	err = utils.ComparePassword(user.Password, password)

	if err != nil {
		return &result, errors.New("invalid username or password")
	}

	isActive := *user.IsActive
	if !isActive {
		return &result, errors.New("user is disabled")
	}

	// generate token & response
	token := uuid.New()
	result.Token = token.String()
	result.Name = user.Name
	result.Role = user.Role
	result.Companies = CompaniesForRole(user.Role)
	if len(result.Companies) == 0 {
		return &result, errors.New("role has no company access")
	}

	// store token in redis
	token_lifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil {
		token_lifespan = 24
	}

	// add new token to the user's tokens set
	if err := config.AddRedisSet("Tokens:"+user.Username, token.String()); err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token.String(), user.Username, time.Duration(token_lifespan)*time.Hour); err != nil {
		return &result, err
	}

	// Bearer token for service-to-service callers; best-effort.
	if jwtToken, jwtErr := utils.JwtGenerate(user.ID, string(user.Role)); jwtErr == nil {
		result.ApiToken = jwtToken
	}

	return &result, nil
}

// destroy current session
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, errors.New("token is required")
	}
	err := config.RemoveRedisKey("Token:" + fmt.Sprint(token))
	if err != nil {
		return false, nil
	}
	// remove current token from tokens list
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return false, errors.New("user not found")
	}
	if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
		return false, err
	}
	return true, nil
}

// GetSessionUser resolves the session's username to its user row,
// redis first, then db.
func GetSessionUser(ctx context.Context) (*User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, errors.New("unauthorized")
	}

	var user User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}
	if !exists {
		db := config.GetDB()
		if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return nil, errors.New("unauthorized")
		}
		if err := config.SetRedisObject("User:"+username, &user, 0); err != nil {
			return nil, err
		}
	}
	user.PrepareGive()
	return &user, nil
}

// SeedDefaultUsers creates the fixed credential set when missing.
// Passwords can be overridden via SEED_PASSWORD_<USERNAME>.
func SeedDefaultUsers(ctx context.Context) error {
	db := config.GetDB()

	defaults := []struct {
		Username string
		Name     string
		Role     UserRole
		Password string
	}{
		{"ips_user", "IPS User", UserRoleIPS, "ips123"},
		{"trio_user", "Trioworld User", UserRoleTrio, "trio123"},
		{"admin", "Administrator", UserRoleAdmin, "adminpass"},
	}

	for _, d := range defaults {
		override := os.Getenv("SEED_PASSWORD_" + d.Username)
		password := d.Password
		if override != "" {
			password = override
		}

		var existing User
		err := db.WithContext(ctx).Model(&User{}).Where("username = ?", d.Username).Take(&existing).Error
		if err == nil {
			if override == "" {
				continue
			}
			// Explicit override resets the stored password.
			hashed, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", d.Username).
				Update("password", string(hashed)).Error; err != nil {
				return err
			}
			_ = existing.RemoveInstanceRedis()
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		user := User{
			Username: d.Username,
			Name:     d.Name,
			Password: string(hashed),
			Role:     d.Role,
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
