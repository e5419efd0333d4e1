package deps

import (
	"context"
	"fmt"
	"passreset/internal/config"
	dl "passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/metrics"
	"passreset/internal/core/domain/user"
	"passreset/internal/db"
	dbuser "passreset/internal/db/user"
	"passreset/internal/implementations/email"
	"passreset/internal/implementations/identity"
	"passreset/internal/implementations/logging"
	prom "passreset/internal/implementations/metrics"
	passwordhasher "passreset/internal/implementations/password_hasher"
	passwordresetter "passreset/internal/implementations/password_resetter"
	randomstringgenerator "passreset/internal/implementations/random_string_generator"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB            *pgxpool.Pool
	SchemaVersion uint
	Metrics       *prom.Prometheus

	Now func() time.Time

	UserRepository           user.UserRepository
	UserIDGenerator          user.IDGenerator
	PasswordHasher           user.PasswordHasher
	PasswordResetIssuer      user.PasswordResetIssuer
	PasswordResetTokenSender user.PasswordResetTokenSender
	MetricsRecorder          metrics.Recorder
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	flushSentry := deps.initSentry()
	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.Metrics = prom.NewPrometheus()
	deps.MetricsRecorder = deps.Metrics

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.UserIDGenerator = identity.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetIssuer = passwordresetter.NewIssuer(
		deps.UserRepository,
		randomstringgenerator.NewGenerator(),
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)
	deps.PasswordResetTokenSender = deps.initPasswordResetTokenSender()

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDSN == "" {
		return func() {}
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              deps.Config.SentryDSN,
		TracesSampleRate: 0.01,
	})
	if err != nil {
		panic(fmt.Sprintf("could not init Sentry: %v\n", err))
	}
	return func() {
		sentry.Flush(5 * time.Second)
	}
}

func (deps *Deps) initLogger() func() {
	logger, err := logging.NewZapLogger(deps.Config.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("could not init logger: %v\n", err))
	}
	if deps.Config.SentryDSN != "" {
		logger = logger.WithErrorReporter(sentry.CurrentHub())
		logger.Info(context.Background(), "Sentry has been successfully initialized.")
	} else {
		logger.Info(context.Background(), "Sentry is disabled.")
	}
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	ctx := context.Background()

	version, err := db.ApplyMigrations(deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not apply DB migrations.", dl.Err(err))
		panic(err)
	}
	deps.SchemaVersion = version

	pool, err := pgxpool.New(ctx, deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to DB.", dl.Err(err))
		panic(err)
	}
	if err := pool.Ping(ctx); err != nil {
		deps.Logger.Error(ctx, "Could not ping DB.", dl.Err(err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(ctx, "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(ctx, "DB connection shut down.")
	}
}

func (deps *Deps) initPasswordResetTokenSender() user.PasswordResetTokenSender {
	switch deps.Config.EmailTransport {
	case config.EmailTransportSES:
		deps.Logger.Info(context.Background(), "Password reset emails are sent with Amazon SES.")
		return email.NewSESSender(
			email.NewSESClient(deps.initAwsConfig()),
			deps.Config.EmailSender,
			deps.Config.BaseURL,
		)
	default:
		deps.Logger.Info(
			context.Background(),
			"Password reset emails are sent with SMTP.",
			dl.Entry("host", deps.Config.SMTPHost),
			dl.Entry("port", deps.Config.SMTPPort),
		)
		username := deps.Config.SMTPUsername
		if username == "" {
			username = deps.Config.EmailSender
		}
		return email.NewSMTPSender(
			email.NewDialer(deps.Config.SMTPHost, deps.Config.SMTPPort, username, deps.Config.SMTPPassword),
			deps.Config.EmailSender,
			deps.Config.BaseURL,
		)
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not load AWS config.", dl.Err(err))
		panic(err)
	}
	return cfg
}
