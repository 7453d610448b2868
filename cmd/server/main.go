package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/config"
	"github.com/leehwangjae/student-success-system-v2/internal/api/handler"
	"github.com/leehwangjae/student-success-system-v2/internal/api/router"
	"github.com/leehwangjae/student-success-system-v2/internal/repository"
	"github.com/leehwangjae/student-success-system-v2/internal/service"
	"github.com/leehwangjae/student-success-system-v2/pkg/database"
	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	applogger "github.com/leehwangjae/student-success-system-v2/pkg/logger"
	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로거 초기화
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로거 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("애플리케이션 시작",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 데이터베이스 연결
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("데이터베이스 연결 실패", zap.Error(err))
	}
	logger.Info("데이터베이스 연결 성공")

	// 3.1 마이그레이션 수행
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB 획득 실패", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("마이그레이션 실패", zap.Error(err))
	}

	// 4. Redis 연결 (실패 시 블랙리스트/속도 제한 없이 계속 기동)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 연결 실패, 토큰 블랙리스트 기능이 비활성화됩니다", zap.Error(err))
		rdb = nil
	}

	// 5. JWT 관리자 초기화
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 의존성 주입: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. 라우터 초기화
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP 서버 기동 (우아한 종료 지원)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 서버 기동", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 서버 오류", zap.Error(err))
		}
	}()

	// 9. 종료 신호 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("종료 신호 수신, 우아한 종료 시작", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("서버 종료 오류", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("서버 종료 완료")
}
