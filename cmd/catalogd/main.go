package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/adapter/handler"
	"github.com/rl1809/cart-store/internal/adapter/storage"
	"github.com/rl1809/cart-store/internal/core/domain"
)

var demoProducts = []struct {
	product domain.Product
	stock   int
}{
	{domain.Product{ID: 1, Title: "Tênis de Caminhada Leve", Price: 179.9, Image: "shoes-1.jpg"}, 5},
	{domain.Product{ID: 2, Title: "Tênis VR Caminhada Confortável", Price: 139.9, Image: "shoes-2.jpg"}, 8},
	{domain.Product{ID: 3, Title: "Tênis Adulto Siroco", Price: 219.9, Image: "shoes-3.jpg"}, 2},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	httpAddr := envOr("HTTP_ADDR", ":8081")
	mysqlDSN := envOr("MYSQL_DSN", "root:root@tcp(localhost:3306)/catalog?parseTime=true")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		logger.Fatal("failed to connect mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	catalog := storage.NewMySQLCatalog(db)

	// Seed demo data (idempotent upserts)
	for _, d := range demoProducts {
		if err := catalog.UpsertProduct(ctx, d.product, d.stock); err != nil {
			logger.Fatal("failed to seed product", zap.Int64("id", d.product.ID), zap.Error(err))
		}
	}
	logger.Info("seeded demo catalog", zap.Int("products", len(demoProducts)))

	// Initialize HTTP server
	mux := http.NewServeMux()
	handler.NewCatalogHandler(catalog).Register(mux)

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("catalog server listening", zap.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	db.Close()
	logger.Info("connections closed")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
