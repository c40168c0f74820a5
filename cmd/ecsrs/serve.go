package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecsrs/internal/db"
	"ecsrs/internal/lifecycle"
	"ecsrs/internal/notify"
	"ecsrs/internal/server"
	"ecsrs/internal/stats"
	"ecsrs/internal/storage"
	"ecsrs/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	reportRepo := store.NewReportRepository(pool, config.TrackingPrefix)
	updateRepo := store.NewReportUpdateRepository(pool)
	rolesRepo := store.NewUserRoleRepository(pool)
	profileRepo := store.NewProfileRepository(pool)
	lgaRepo := store.NewLGARepository(pool)
	newsRepo := store.NewNewsRepository(pool)
	prefsRepo := store.NewNotificationPreferencesRepository(pool)

	emailSender := notify.NewHTTPEmailSender(config.EmailAPIURL, config.EmailAPIKey, config.EmailFrom)
	smsSender := notify.NewHTTPSMSSender(config.SMSAccountSID, config.SMSAuthToken, config.SMSFromNumber)
	dispatcher := notify.NewDispatcher(logger, prefsRepo, profileRepo, emailSender, smsSender)

	broadcaster := lifecycle.NewBroadcaster()
	engine := lifecycle.New(logger, reportRepo, updateRepo, rolesRepo, dispatcher, broadcaster)
	statsService := stats.NewService(reportRepo)

	media := storage.NewMediaStore(config.SupabaseProjectID, config.SupabaseAPIKey, config.MediaBucketName)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initilaize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwk with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		engine,
		statsService,
		broadcaster,
		lgaRepo,
		newsRepo,
		profileRepo,
		prefsRepo,
		rolesRepo,
		media,
		cognitoClient,
		s3Client,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
