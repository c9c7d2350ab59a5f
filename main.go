package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerniceZTT/client_crm/config"
	"github.com/BerniceZTT/client_crm/controllers"
	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/middleware"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/routes"
	"github.com/BerniceZTT/client_crm/service"
	"github.com/BerniceZTT/client_crm/storage"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "client_crm",
	Short:         "客户管理系统后端",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	RunE:  runServe,
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "创建集合和索引",
	RunE:  runInitDB,
}

func main() {
	rootCmd.AddCommand(serveCmd, initDBCmd)
	// 不带子命令时直接启动服务
	rootCmd.RunE = runServe

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// 初始化日志
	utils.InitLogger(cfg.Debug)

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	db, err := repository.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("连接MongoDB失败: %w", err)
	}
	defer repository.CloseMongoDB(context.Background())

	if err := repository.InitializeCollections(ctx, db); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化数据库集合失败")
	}

	blobs, err := storage.NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("初始化文件存储失败: %w", err)
	}

	publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return fmt.Errorf("连接消息队列失败: %w", err)
	}
	defer publisher.Close()

	gw := repository.NewMongoGateway(db)
	svc := service.New(gw, blobs, publisher, cfg.Storage.Bucket)
	authSvc := service.NewAuthService(gw, cfg.JWTKey)
	controllers.Init(svc, authSvc, cfg.MaxUploadBytes())

	// 每日提醒汇总
	if cfg.ReminderHour >= 0 {
		service.NewReminderDigest(svc).Schedule(ctx, cfg.ReminderHour)
	}

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware(gw))

	// 注册路由
	routes.RegisterRoutes(router, routes.Deps{
		Auth: authSvc,
		DBStatus: func(ctx context.Context) map[string]interface{} {
			return repository.GetDatabaseStatus(ctx, db)
		},
	})

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 优雅关闭
	select {
	case err := <-errCh:
		return fmt.Errorf("启动服务器失败: %w", err)
	case <-ctx.Done():
	}
	utils.Logger.Info().Msg("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器关闭异常: %w", err)
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
	return nil
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	db, err := repository.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("连接MongoDB失败: %w", err)
	}
	defer repository.CloseMongoDB(context.Background())

	if err := repository.InitializeCollections(ctx, db); err != nil {
		return err
	}

	for name, count := range repository.GetDatabaseStatus(ctx, db) {
		utils.Logger.Info().Str("collection", name).Interface("count", count).Msg("集合状态")
	}
	return nil
}
