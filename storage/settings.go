package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/sandrogomez-dev/Task-Flow/models"
)

// 固定的本地存储文件名，相当于浏览器localStorage的key
const (
	settingsFile = "taskflow-settings.json"
	userFile     = "user.json"
)

// SettingsStorage 本地偏好设置与用户身份的存储。
// 设置在启动时读取一次，之后每次变更都会写回
type SettingsStorage struct {
	dir string
	mu  sync.Mutex
}

// NewSettingsStorage 创建本地存储，目录不存在时自动创建
func NewSettingsStorage(dir string) *SettingsStorage {
	os.MkdirAll(dir, 0755)
	return &SettingsStorage{dir: dir}
}

// Load 读取持久化的设置，文件不存在时返回默认设置
func (s *SettingsStorage) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.DefaultSettings()

	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dir, settingsFile))
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}
	if err := v.Unmarshal(&settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// Save 持久化设置
func (s *SettingsStorage) Save(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dir, settingsFile))
	v.SetConfigType("json")
	v.Set("theme", settings.Theme)
	v.Set("notifications", settings.Notifications)
	v.Set("autoSave", settings.AutoSave)
	return v.WriteConfig()
}

// LoadUser 读取本地用户身份，没有时返回匿名用户
func (s *SettingsStorage) LoadUser() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return models.User{ID: "anonymous"}
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		return models.User{ID: "anonymous"}
	}
	return user
}

// SaveUser 持久化本地用户身份
func (s *SettingsStorage) SaveUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0644)
}
