package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandrogomez-dev/Task-Flow/config"
	"github.com/sandrogomez-dev/Task-Flow/dispatcher"
	"github.com/sandrogomez-dev/Task-Flow/models"
	"github.com/sandrogomez-dev/Task-Flow/realtime"
	"github.com/sandrogomez-dev/Task-Flow/services"
	"github.com/sandrogomez-dev/Task-Flow/storage"
	"github.com/sandrogomez-dev/Task-Flow/store"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
		return
	}

	// 初始化本地存储
	settingsStorage := storage.NewSettingsStorage(conf.DataDir)

	// 创建Store与Dispatcher
	appStore := store.New()
	d := dispatcher.New(appStore, settingsStorage, &services.SampleTaskLoader{})

	// 恢复持久化的设置
	settings, err := settingsStorage.Load()
	if err != nil {
		config.Logger.Warnw("读取本地设置失败，使用默认设置", "error", err)
	}
	d.Dispatch(models.UpdateSettings{Settings: settings.AsPatch()})

	// 恢复本地用户身份
	user := settingsStorage.LoadUser()
	d.Dispatch(models.SetUser{User: &user})

	// 创建演示项目并加载其任务
	project := services.SeedDemoProject()
	d.AddProject(project)
	d.SetCurrentProject(&project)

	// 启动实时同步
	transport := realtime.NewRedisTransport(conf)
	client := realtime.NewClient(transport, d, realtime.Options{
		Enabled:              conf.EnableRealTime,
		ReconnectionDelay:    time.Duration(conf.ReconnectionDelayMs) * time.Millisecond,
		ReconnectionAttempts: conf.ReconnectionAttempts,
		ConnectTimeout:       time.Duration(conf.ConnectTimeoutMs) * time.Millisecond,
	}, func() string { return user.ID })
	client.Start(project.ID)

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭...")

	// 停止实时同步并关闭连接
	client.Stop()

	log.Println("已关闭")
}
