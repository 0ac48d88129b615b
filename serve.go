package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/wansing/scms/backend"
	"github.com/wansing/scms/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the backend over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return listen(a, opts.listen, opts.base)
	},
}

func init() {
	serveCmd.Flags().StringVar(&opts.listen, "listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")
	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	serveCmd.Flags().StringVar(&opts.base, "base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
}

func listen(a *app, addr string, base string) error {

	// golang mux recovers from panics, so the program won't crash
	var mux = http.NewServeMux()
	mux.Handle(base+"/metrics", promhttp.Handler())
	util.HandlePrefix(mux, base, backend.NewBackendRouter(a.core, base))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	a.log.Infof("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      a.core.SessionManager.LoadAndSave(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigintChannel := make(chan os.Signal, 1)

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				a.log.WithError(err).Error("error listening")
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	a.log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx) // waits for running handlers
}
