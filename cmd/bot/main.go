// Package main Task Telegram Bot 主入口
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"task-telegram/internal/bot"
	"task-telegram/internal/config"
	"task-telegram/internal/logger"
	"task-telegram/internal/quote"
	"task-telegram/internal/store"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Output); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("===== task telegram bot starting =====")
	logger.Infof("version: %s", cfg.App.Version)
	logger.Infof("debug mode: %v", cfg.App.Debug)

	// 打开 JSON 数据文件
	st, err := store.Open(cfg.Database.File)
	if err != nil {
		logger.Fatalf("failed to open database file: %v", err)
	}
	logger.Infof("✓ database loaded (file: %s)", cfg.Database.File)

	// 启动时校验任务计数与实际任务的一致性
	if err := st.RepairTaskCounts(); err != nil {
		logger.Warnf("failed to repair task counts: %v", err)
	}

	// 初始化名言客户端
	quoteClient := quote.NewClient(
		cfg.Quotes.APIURL,
		cfg.Quotes.TextField,
		cfg.Quotes.AuthorField,
		cfg.Quotes.GetCacheDuration(),
		cfg.Quotes.GetTimeout(),
	)
	logger.Infof("✓ quote client initialized (api: %s)", cfg.Quotes.APIURL)

	// 创建并启动 Telegram Bot
	telegramBot, err := bot.New(
		cfg.Telegram.Token,
		cfg.Telegram.Timeout,
		cfg.Telegram.AdminIDs,
		st,
		quoteClient,
	)
	if err != nil {
		logger.Fatalf("failed to initialize bot: %v", err)
	}
	logger.Info("✓ telegram bot initialized")

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动 Bot (在 goroutine 中)
	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			if err != context.Canceled {
				logger.Errorf("bot runtime error: %v", err)
			}
			cancel()
		}
	}()

	logger.Info("===== bot ready =====")

	// 优雅关闭信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Infof("received shutdown signal: %v", sig)
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	logger.Info("shutting down bot...")
	telegramBot.Stop()

	logger.Info("===== bot stopped =====")
}
