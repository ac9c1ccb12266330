package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"room-allocator/internal/config"
	"room-allocator/internal/logger"
	"room-allocator/internal/service"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "room-allocator")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting room-allocator service")

	// 创建服务
	svc, err := service.NewAllocatorService(cfg, log)
	if err != nil {
		log.Fatal("Failed to create allocator service", zap.Error(err))
	}

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 启动服务（在 goroutine 中）
	// once 模式执行完一轮后正常返回，也走 doneChan 退出
	doneChan := make(chan error, 1)
	go func() {
		doneChan <- svc.Start(ctx)
	}()

	// 等待信号或服务结束
	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
		<-doneChan
	case err := <-doneChan:
		if err != nil {
			log.Error("Service error", zap.Error(err))
		}
		cancel()
	}

	// 停止服务
	if err := svc.Stop(ctx); err != nil {
		log.Error("Error stopping service", zap.Error(err))
	}

	log.Info("Service stopped")
}
