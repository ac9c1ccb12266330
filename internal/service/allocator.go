package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"room-allocator/internal/config"
	"room-allocator/internal/database"
	"room-allocator/internal/extractor"
	"room-allocator/internal/house"
	"room-allocator/internal/loader"
	"room-allocator/internal/models"
	"room-allocator/internal/recommender"
	"room-allocator/internal/repository"
	"room-allocator/internal/snapshot"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedSource 一个排房周期需要的全部数据源
type FeedSource interface {
	Rooms(ctx context.Context) ([]models.Room, error)
	Statuses(ctx context.Context) ([]models.RoomStatus, error)
	HouseViews(ctx context.Context) ([]models.HouseView, error)
	Checkins(ctx context.Context) ([]models.Booking, error)
}

// AllocatorService 排房服务
// 每个周期：加载数据源 -> 对账 -> 发布快照（可选）-> 逐预订推荐
type AllocatorService struct {
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
	feeds       FeedSource
	engine      *house.Engine
	pipeline    *recommender.Pipeline
	snapshotMgr *snapshot.Manager
}

// NewAllocatorService 创建排房服务（按配置建立外部连接）
func NewAllocatorService(cfg *config.Config, logger *zap.Logger) (*AllocatorService, error) {
	// 提取调参：文件缺失或非法时保留内置默认值
	extraction := config.DefaultExtractionConfig()
	if cfg.Extractor.ConfigPath != "" {
		loaded, err := config.LoadExtractionConfig(cfg.Extractor.ConfigPath)
		if err != nil {
			logger.Warn("Failed to load extraction config, using defaults",
				zap.String("path", cfg.Extractor.ConfigPath),
				zap.Error(err),
			)
		} else {
			extraction = loaded
		}
	}

	ex := extractor.NewFromConfig(cfg, extraction, logger)
	pipeline := recommender.NewPipeline(logger, recommender.DefaultStages(ex)...)
	engine := house.NewEngine(logger)

	var feeds FeedSource = loader.NewDirFeedSource(cfg.Feeds.DataDir)

	// 静态房档走 PostgreSQL 时，只覆盖房档一路，其余仍走文件
	var db *sql.DB
	if cfg.Feeds.InventorySource == "postgres" {
		var err error
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		roomRepo := repository.NewRoomRepository(db, logger)
		feeds = &dbInventoryFeedSource{FeedSource: feeds, repo: roomRepo}
	}

	// 初始化 Redis（用于发布对账快照）
	var redisClient *redis.Client
	var snapshotMgr *snapshot.Manager
	if cfg.Allocator.Snapshot.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		kv := snapshot.NewRedisKVStore(redisClient)
		ttl := time.Duration(cfg.Allocator.Snapshot.TTLSeconds) * time.Second
		snapshotMgr = snapshot.NewManager(kv, ttl, logger)
	}

	return &AllocatorService{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		feeds:       feeds,
		engine:      engine,
		pipeline:    pipeline,
		snapshotMgr: snapshotMgr,
	}, nil
}

// NewAllocator 组件注入构造（单元测试和嵌入场景使用，不建立外部连接）
func NewAllocator(
	cfg *config.Config,
	logger *zap.Logger,
	feeds FeedSource,
	engine *house.Engine,
	pipeline *recommender.Pipeline,
	snapshotMgr *snapshot.Manager,
) *AllocatorService {
	return &AllocatorService{
		config:      cfg,
		logger:      logger,
		feeds:       feeds,
		engine:      engine,
		pipeline:    pipeline,
		snapshotMgr: snapshotMgr,
	}
}

// dbInventoryFeedSource 房档一路改读数据库，其余数据源透传
type dbInventoryFeedSource struct {
	FeedSource
	repo *repository.RoomRepository
}

func (s *dbInventoryFeedSource) Rooms(ctx context.Context) ([]models.Room, error) {
	return s.repo.GetAllRooms()
}

// Start 启动服务
func (s *AllocatorService) Start(ctx context.Context) error {
	s.logger.Info("Starting room allocator service",
		zap.String("run_mode", s.config.Allocator.RunMode),
		zap.String("extractor_mode", s.config.Extractor.Mode),
		zap.Bool("snapshot_enabled", s.snapshotMgr != nil),
	)

	switch s.config.Allocator.RunMode {
	case "once":
		return s.RunCycle(ctx)
	case "polling":
		return s.startPollingMode(ctx)
	default:
		return fmt.Errorf("unsupported run mode: %s", s.config.Allocator.RunMode)
	}
}

// startPollingMode 启动轮询模式
func (s *AllocatorService) startPollingMode(ctx context.Context) error {
	interval := time.Duration(s.config.Allocator.Polling.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Starting polling mode",
		zap.Duration("interval", interval),
	)

	// 首次立即执行一轮
	if err := s.RunCycle(ctx); err != nil {
		s.logger.Error("Allocation cycle failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.RunCycle(ctx); err != nil {
				s.logger.Error("Allocation cycle failed", zap.Error(err))
			}
		}
	}
}

// RunCycle 执行一轮排房
func (s *AllocatorService) RunCycle(ctx context.Context) error {
	runID := uuid.New().String()
	log := s.logger.With(zap.String("run_id", runID))

	rooms, err := s.feeds.Rooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rooms feed: %w", err)
	}
	statuses, err := s.feeds.Statuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load status feed: %w", err)
	}
	views, err := s.feeds.HouseViews(ctx)
	if err != nil {
		return fmt.Errorf("failed to load house view feed: %w", err)
	}
	checkins, err := s.feeds.Checkins(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checkins feed: %w", err)
	}

	log.Info("Loaded feeds",
		zap.Int("room_count", len(rooms)),
		zap.Int("status_count", len(statuses)),
		zap.Int("house_view_count", len(views)),
		zap.Int("checkin_count", len(checkins)),
	)

	state := s.engine.Reconcile(rooms, statuses, views)

	// 发布对账快照（失败只记日志，不中断排房）
	if s.snapshotMgr != nil {
		day := time.Now().Format("2006-01-02")
		if err := s.snapshotMgr.UpdateHouseState(ctx, day, state.Rooms()); err != nil {
			log.Error("Failed to update house state snapshot", zap.Error(err))
		}
	}

	matched := 0
	unmatched := 0
	for _, booking := range checkins {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		room, ok := s.pipeline.Recommend(ctx, booking, state)
		if ok {
			matched++
			log.Info("Recommended room for booking",
				zap.String("booking_id", booking.BookingID),
				zap.Int("room_number", room.Number),
				zap.String("category", room.Category),
				zap.Int("floor", room.Floor),
			)
		} else {
			unmatched++
			log.Info("No room found for booking",
				zap.String("booking_id", booking.BookingID),
				zap.String("category", booking.Category),
				zap.Int("guests", booking.Guests),
			)
		}
	}

	log.Info("Completed allocation cycle",
		zap.Int("matched_count", matched),
		zap.Int("unmatched_count", unmatched),
		zap.Int("room_count", state.Len()),
	)

	return nil
}

// Stop 停止服务
func (s *AllocatorService) Stop(ctx context.Context) error {
	s.logger.Info("Stopping room allocator service")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Error closing redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			s.logger.Error("Error closing database connection", zap.Error(err))
		}
	}

	s.logger.Info("Room allocator service stopped")
	return nil
}
