package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/sandrogomez-dev/Task-Flow/config"
	"github.com/sandrogomez-dev/Task-Flow/dispatcher"
	"github.com/sandrogomez-dev/Task-Flow/models"
	"github.com/sandrogomez-dev/Task-Flow/utils"
)

// ConnState 连接状态
type ConnState int

const (
	// StateDisabled 未启用，不会尝试连接
	StateDisabled ConnState = iota
	// StateConnecting 连接尝试进行中
	StateConnecting
	// StateConnected 已连接并订阅
	StateConnected
	// StateReconnecting 等待固定间隔后重试
	StateReconnecting
	// StatePermanentlyDisconnected 重试次数用尽，本次订阅不再自动重连
	StatePermanentlyDisconnected
)

// Options 实时同步配置
type Options struct {
	Enabled              bool
	ReconnectionDelay    time.Duration
	ReconnectionAttempts int
	ConnectTimeout       time.Duration
}

// Client 单个项目的实时同步客户端。
// 独立于任何UI生命周期，通过Start/Stop显式管理；
// 切换当前项目时应Stop旧客户端并新建一个。
// 远端事件经由与本地操作完全相同的动作写入Store，
// 保证无论变更来自哪里都只有一条写入路径
type Client struct {
	transport  Transport
	dispatcher *dispatcher.Dispatcher
	opts       Options

	clientID      string
	currentUserID func() string

	// OnTyping 输入状态回调，不写入Store
	OnTyping func(userID, taskID string, isTyping bool)

	mu                 sync.Mutex
	state              ConnState
	projectID          string
	onlineUsers        []models.User
	connectionAttempts int
	maxAttemptsReached bool
	started            bool
	cancel             context.CancelFunc
	wg                 sync.WaitGroup
}

// NewClient 创建实时同步客户端。
// currentUserID为nil时所有操作以匿名身份标注
func NewClient(transport Transport, d *dispatcher.Dispatcher, opts Options, currentUserID func() string) *Client {
	if opts.ReconnectionDelay <= 0 {
		opts.ReconnectionDelay = 2 * time.Second
	}
	if opts.ReconnectionAttempts <= 0 {
		opts.ReconnectionAttempts = 3
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if currentUserID == nil {
		currentUserID = func() string { return "anonymous" }
	}
	return &Client{
		transport:     transport,
		dispatcher:    d,
		opts:          opts,
		clientID:      utils.GenerateID(),
		currentUserID: currentUserID,
		state:         StateDisabled,
	}
}

// ClientID 返回本客户端在协作通道上的标识
func (c *Client) ClientID() string {
	return c.clientID
}

// Start 为指定项目启动同步。
// 未启用、无项目或重试已用尽时保持Disabled，不发起连接
func (c *Client) Start(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		config.Logger.Warnw("实时同步已在运行", "projectId", c.projectID)
		return
	}
	if !c.opts.Enabled || projectID == "" || c.maxAttemptsReached {
		config.Logger.Debugw("实时同步未启用", "projectId", projectID)
		c.state = StateDisabled
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.projectID = projectID
	c.started = true
	c.state = StateConnecting

	c.wg.Add(1)
	go c.run(ctx, projectID)
}

// Stop 停止同步并关闭连接，同步取消所有待定的重连。
// 停止后的连接不会再向Store投递任何事件
func (c *Client) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.transport.Close()
	c.wg.Wait()

	c.mu.Lock()
	c.state = StateDisabled
	c.started = false
	c.projectID = ""
	c.onlineUsers = nil
	c.mu.Unlock()
}

// run 连接循环：连接、接收、按固定间隔重试，直到成功停止或重试用尽
func (c *Client) run(ctx context.Context, projectID string) {
	defer c.wg.Done()

	for {
		c.setState(StateConnecting)

		connectCtx, cancelConnect := context.WithTimeout(ctx, c.opts.ConnectTimeout)
		err := c.transport.Connect(connectCtx, projectID)
		cancelConnect()

		if err == nil {
			c.onConnected(projectID)

			if !c.receive(ctx) {
				// 主动停止
				return
			}

			config.Logger.Warnw("与协作通道的连接断开", "projectId", projectID)
			c.dispatcher.ShowNotification("连接已断开，切换为本地模式", models.NotificationWarning, true)
			c.setState(StateReconnecting)
		} else {
			if ctx.Err() != nil {
				return
			}

			attempts := c.bumpAttempts()
			config.Logger.Warnw("连接协作通道失败", "error", err, "attempts", attempts, "projectId", projectID)

			if attempts >= c.opts.ReconnectionAttempts {
				c.giveUp()
				return
			}

			// 只在前几次失败时提示，避免重复刷屏
			if attempts <= 2 {
				c.dispatcher.ShowNotification("连接失败，当前为本地模式", models.NotificationWarning, true)
			}
			c.setState(StateReconnecting)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.opts.ReconnectionDelay):
		}
	}
}

// onConnected 连接成功：重置重试计数、广播加入项目、提示用户
func (c *Client) onConnected(projectID string) {
	c.mu.Lock()
	c.state = StateConnected
	c.connectionAttempts = 0
	c.mu.Unlock()

	config.Logger.Infow("已连接到协作通道", "projectId", projectID, "clientId", c.clientID)

	user := c.localUser()
	c.publish(models.EventJoinProject, models.JoinProjectPayload{
		ProjectID: projectID,
		User:      user,
	})

	c.dispatcher.ShowNotification("已连接到项目实时协作", models.NotificationSuccess, true)
}

// localUser 返回本地用户身份，优先使用Store中的用户资料
func (c *Client) localUser() models.User {
	if u := c.dispatcher.State().User; u != nil {
		return *u
	}
	return models.User{ID: c.currentUserID()}
}

// receive 接收远端事件直到连接断开。
// 返回true表示连接意外断开需要重连，false表示被主动停止
func (c *Client) receive(ctx context.Context) bool {
	events := c.transport.Events()
	for {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return ctx.Err() == nil
			}
			c.handleEvent(event)
		}
	}
}

func (c *Client) setState(state ConnState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Client) bumpAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectionAttempts++
	return c.connectionAttempts
}

// giveUp 重试次数用尽，进入永久离线状态并通知用户一次
func (c *Client) giveUp() {
	c.mu.Lock()
	c.state = StatePermanentlyDisconnected
	c.maxAttemptsReached = true
	c.mu.Unlock()

	config.Logger.Warnw("重连次数已用尽，停止自动重连", "projectId", c.ProjectID())
	c.dispatcher.ShowNotification("服务器不可用，将继续以本地模式运行", models.NotificationInfo, true)
}

// State 返回当前连接状态
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected 是否处于已连接状态
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// ProjectID 返回当前订阅的项目
func (c *Client) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID
}

// ConnectionAttempts 返回当前的连续失败次数
func (c *Client) ConnectionAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectionAttempts
}

// MaxAttemptsReached 重试是否已用尽
func (c *Client) MaxAttemptsReached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxAttemptsReached
}

// OnlineUsers 返回在线用户快照
func (c *Client) OnlineUsers() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	users := make([]models.User, len(c.onlineUsers))
	copy(users, c.onlineUsers)
	return users
}

func (c *Client) setOnlineUsers(users []models.User) {
	c.mu.Lock()
	c.onlineUsers = users
	c.mu.Unlock()
}

func (c *Client) addOnlineUser(user models.User) {
	c.mu.Lock()
	c.onlineUsers = append(c.onlineUsers, user)
	c.mu.Unlock()
}

func (c *Client) removeOnlineUser(userID string) {
	c.mu.Lock()
	users := make([]models.User, 0, len(c.onlineUsers))
	for _, u := range c.onlineUsers {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	c.onlineUsers = users
	c.mu.Unlock()
}
