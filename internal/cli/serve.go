// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/likexian/selfca"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alvinbaena/pwdcheck/internal/api"
	"github.com/alvinbaena/pwdcheck/internal/config"
	"github.com/alvinbaena/pwdcheck/internal/util"
	"github.com/alvinbaena/pwdcheck/pkg/hibp"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password check API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd)
		},
	}
)

func init() {
	serveFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	cmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	cmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	cmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	cmd.Flags().DurationVar(&timeout, "timeout", hibp.DefaultTimeout, "Timeout for each Pwned Passwords lookup.")
}

// serverConfig merges the environment configuration with the flags set on
// the command line, flags winning.
func serverConfig(cmd *cobra.Command) (api.Config, error) {
	cfg, err := api.LoadConfig()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = strconv.Itoa(int(port))
	}
	if flags.Changed("self-tls") {
		cfg.SelfTLS = selfTLS
	}
	if flags.Changed("tls-cert") {
		cfg.TLSCert = tlsCert
	}
	if flags.Changed("tls-key") {
		cfg.TLSKey = tlsKey
	}
	cfg.Debug = cfg.Debug || verbose

	return cfg, cfg.Validate()
}

func serveCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	cfg, err := serverConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	leakCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if !cmd.Flags().Changed("timeout") {
		timeout = leakCfg.Timeout
	}

	router := api.NewRouter(leakCfg.NewClient(), timeout, cfg.Debug)

	srvAddr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.SelfTLS && (cfg.TLSCert == "" || cfg.TLSKey == "") {
		log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
		if srv.TLSConfig, err = selfSignedTLS(); err != nil {
			return err
		}
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		// With TLSConfig set the cert and key paths are empty and ignored.
		if err := srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

func selfSignedTLS() (*tls.Config, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can't be a catch, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
