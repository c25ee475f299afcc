package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DouDizhu/config"
	"DouDizhu/internal/auth"
	"DouDizhu/internal/game/manager"
	"DouDizhu/internal/middleware"
	"DouDizhu/internal/monitor"
	"DouDizhu/internal/record"
	"DouDizhu/internal/storage"
	"DouDizhu/internal/utils"
	"DouDizhu/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	config.Load()
	utils.Init(config.C.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//-------------------------------------------------------
	// 1. 初始化存储（按 storage.driver）
	//-------------------------------------------------------
	switch config.C.Storage.Driver {
	case "redis":
		if err := storage.InitRedis(ctx, config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB); err != nil {
			utils.Log.Fatal("redis init failed", "err", err)
		}
	case "postgres":
		if err := storage.InitPostgres(ctx, config.C.Database.DSN); err != nil {
			utils.Log.Fatal("postgres init failed", "err", err)
		}
	}
	records, err := record.Open(ctx, config.C.Storage.Driver, config.C.Records.Limit)
	if err != nil {
		utils.Log.Fatal("record store init failed", "driver", config.C.Storage.Driver, "err", err)
	}

	mon := monitor.NewMonitor("ddz", prometheus.DefaultRegisterer)

	//-------------------------------------------------------
	// 2. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	hub.Monitor = mon

	//-------------------------------------------------------
	// 3. 初始化 GameManager，默认房间随进程启动
	//-------------------------------------------------------
	gameMgr := manager.NewGameManager(hub, manager.Options{
		DefaultRoom:  config.C.Game.RoomName,
		MaxRooms:     config.C.Game.MaxRooms,
		PauseTimeout: config.C.PauseTimeout(),
		Records:      records,
		Monitor:      mon,
	})
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	hub.OnLeave = gameMgr.HandleDisconnect
	go hub.Run()

	if _, err := gameMgr.OpenRoom(config.C.Game.RoomName); err != nil {
		utils.Log.Fatal("default room failed", "err", err)
	}

	//-------------------------------------------------------
	// 4. 初始化 Gin + CORS
	//-------------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime": mon.Uptime().String(), "online": hub.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := []byte(config.C.JWT.Secret)
	ttl := time.Duration(config.C.JWT.TTLHours) * time.Hour
	if len(secret) > 0 {
		r.POST("/auth/ticket", auth.NewHandler(secret, ttl).Ticket)
	} else {
		utils.Log.Warn("jwt.secret is empty, /ws accepts anyone")
	}

	//-------------------------------------------------------
	// 5. WebSocket 入口 + 房间查询
	//-------------------------------------------------------
	r.GET("/ws", middleware.JwtAuthMiddleware(secret), websocket.ServeWS(hub))
	manager.NewHandler(gameMgr, config.C.Records.Limit).Register(r)

	//-------------------------------------------------------
	// 6. 启动服务器，收到信号后优雅退出
	//-------------------------------------------------------
	srv := &http.Server{Addr: config.C.Server.Port, Handler: r}
	go func() {
		utils.Log.Info("server running", "addr", config.C.Server.Port, "room", config.C.Game.RoomName, "storage", config.C.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatal("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	utils.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Warn("http shutdown", "err", err)
	}
	gameMgr.Shutdown()
	hub.Close()
	if err := storage.Close(); err != nil {
		utils.Log.Warn("storage close", "err", err)
	}
}
