package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/netdiag/pkg/grpc"
)

const (
	MaxRecvSize     = 4 * 1024 * 1024 // 4MB
	MaxSendSize     = 4 * 1024 * 1024 // 4MB
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// GRPCServiceRegistrar is a function type for registering gRPC services.
type GRPCServiceRegistrar func(*grpc.Server) error

// ServerOptions holds configuration for creating a server.
type ServerOptions struct {
	ServiceName          string
	Service              Service
	GRPCAddr             string
	RegisterGRPCServices []GRPCServiceRegistrar
	HTTPServer           *http.Server
	Signals              []os.Signal
}

// RunServer starts the service, the gRPC health server and the optional
// HTTP server, and stops all of them on a signal, a service error or
// cancellation of ctx.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	grpcServer := setupGRPCServer(opts.GRPCAddr, opts.ServiceName, opts.RegisterGRPCServices)

	errChan := make(chan error, 3)

	go func() {
		if err := opts.Service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- fmt.Errorf("service: %w", err)
		}
	}()

	go func() {
		log.Printf("Starting gRPC server on %s", opts.GRPCAddr)

		if err := grpcServer.Start(); err != nil {
			errChan <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	if opts.HTTPServer != nil {
		go func() {
			log.Printf("Starting HTTP server on %s", opts.HTTPServer.Addr)

			if err := opts.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("HTTP server: %w", err)
			}
		}()
	}

	return handleShutdown(ctx, cancel, grpcServer, opts, errChan)
}

func setupGRPCServer(addr, serviceName string, registrars []GRPCServiceRegistrar) *grpc.Server {
	grpcServer := grpc.NewServer(addr,
		grpc.WithMaxRecvSize(MaxRecvSize),
		grpc.WithMaxSendSize(MaxSendSize),
	)

	if err := grpcServer.RegisterHealthServer(); err != nil {
		log.Printf("Failed to register health server: %v", err)
	}

	grpcServer.TrackService(serviceName)

	for _, register := range registrars {
		if err := register(grpcServer); err != nil {
			log.Printf("Failed to register gRPC service: %v", err)
		}
	}

	return grpcServer
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc, grpcServer *grpc.Server, opts *ServerOptions, errChan chan error) error {
	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	defer signal.Stop(sigChan)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)

		runErr = err
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if opts.HTTPServer != nil {
		if err := opts.HTTPServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during HTTP server shutdown: %v", err)
		}
	}

	grpcServer.Stop(shutdownCtx)

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Printf("Error during service shutdown: %v", err)

		return errors.Join(runErr, fmt.Errorf("shutdown error: %w", err))
	}

	return runErr
}
