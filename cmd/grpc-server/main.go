package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"museumhub/internal/app"
	"museumhub/pkg/utils"
)

// grpc-server exposes the standard gRPC health service, with one service
// name per museum source ("museum.aic", "museum.met") and the overall ""
// entry that is SERVING while at least one source answers.
func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("grpc listen failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := a.Monitor()
	grpcServer := grpc.NewServer()
	monitor.Register(grpcServer)
	go monitor.Run(ctx)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatalf("grpc server stopped: %v", err)
	}
}
