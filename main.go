package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/middleware"
	"github.com/MildKid/DegReviews/routes"
	"github.com/MildKid/DegReviews/services"
	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
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

	// 初始化数据库
	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
		return
	}

	// 初始化Redis
	rdb, err := config.InitRedis(conf)
	if err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
		return
	}

	// 初始化JWT签名密钥
	utils.InitJWT(conf.JWTSecret)

	// 加载餐段时间表，非法配置直接拒绝启动
	schedule, err := services.NewScheduleService(conf.Timezone, conf.ScheduleFile)
	if err != nil {
		log.Fatalf("无法加载餐段时间表: %v", err)
		return
	}

	// 构建校验规则和违禁词表
	rules, err := services.RulesFromConfig(conf)
	if err != nil {
		log.Fatalf("无法加载校验规则: %v", err)
		return
	}

	// 语言可读性检查默认关闭，开启时才创建LLM客户端
	var detector services.LanguageDetector
	if conf.LanguageCheckEnabled {
		deepseekClient, err := services.NewDeepseekClient(conf.DeepseekAPIKey, conf.DeepseekAPIEndpoint)
		if err != nil {
			log.Fatalf("无法初始化Deepseek客户端: %v", err)
		}
		detector = services.NewLanguageService(deepseekClient)
	}

	gate := services.NewGateService(rdb, schedule.Location())
	validator := services.NewValidatorService(rules, detector)
	reviews := services.NewReviewService(db, schedule.Location())
	cookies := utils.NewCookieManager(conf.IdentityCookieDays)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.Default()

	// 设置中间件
	middleware.SetupMiddleware(r)
	r.Use(middleware.RequestLogger())

	// 注册路由
	routes.RegisterRoutes(r, conf, schedule, gate, validator, reviews, cookies)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	// 关闭Redis与数据库连接
	if err := rdb.Close(); err != nil {
		log.Printf("Redis关闭失败: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("服务器已关闭")
}
