package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BerniceZTT/gwsample_end/config"
	"github.com/BerniceZTT/gwsample_end/controllers"
	"github.com/BerniceZTT/gwsample_end/middleware"
	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/odata"
	"github.com/BerniceZTT/gwsample_end/repository"
	"github.com/BerniceZTT/gwsample_end/routes"
	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	utils.InitLogger()

	// 加载配置
	cfg := config.LoadConfig()

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据后端
	source, err := newDataSource(cfg)
	if err != nil {
		utils.Logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("初始化数据后端失败")
	}
	defer repository.CloseMongoDB()

	// 会话注册表
	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	registry := service.NewSessionRegistry(source, cfg.SessionTTL, initialGroupField(cfg.InitialGroupField))
	registry.StartSweeper(appCtx, 10*time.Minute)

	secret := []byte(cfg.JWTKey)
	controllers.Setup(registry, secret, cfg.SessionTTL, cfg.RegenerateCount)

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(utils.SplitCSV(cfg.CORSOrigins)))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware())

	// 注册路由
	routes.RegisterRoutes(router, registry, secret)

	// 客户端过滤会读取完整订单集合，写超时比读超时长
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ODataTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Str("backend", cfg.Backend).Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("正在关闭服务器...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}

// newDataSource 按配置选择MongoDB或OData后端
func newDataSource(cfg *config.Config) (service.DataSource, error) {
	switch cfg.Backend {
	case config.BackendOData:
		utils.Logger.Info().Str("url", cfg.ODataURL).Msg("使用OData后端")
		return odata.NewClient(cfg.ODataURL, cfg.ODataUser, cfg.ODataPassword, cfg.ODataTimeout), nil

	case config.BackendMongo:
		if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
			return nil, err
		}
		database := repository.Database()

		utils.Logger.Info().Msg("开始系统初始化...")
		if err := repository.InitializeCollections(database); err != nil {
			utils.Logger.Error().Err(err).Msg("初始化数据库集合失败")
		}
		if cfg.SeedOnStart {
			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := repository.SeedMasterData(seedCtx, database); err != nil {
				utils.Logger.Error().Err(err).Msg("初始化演示数据失败")
			}
		}
		utils.Logger.Info().Msg("系统初始化完成")
		return repository.NewMongoSource(database), nil
	}
	return nil, fmt.Errorf("未知的后端类型: %s", cfg.Backend)
}

// initialGroupField 解析新会话的初始分组，none 或空表示不分组
func initialGroupField(name string) models.GroupField {
	if name == "" || strings.EqualFold(name, "none") {
		return models.GroupFieldNone
	}
	field, ok := models.ParseGroupField(name)
	if !ok {
		utils.Logger.Warn().Str("field", name).Msg("未知的初始分组字段，新会话不分组")
		return models.GroupFieldNone
	}
	return field
}
