package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/JojoFlex1/done/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

const (
	PersistencePostgres = "postgres"
	PersistenceMemory   = "memory"

	StorageLocal = "local"
	StorageS3    = "s3"

	OracleMock = "mock"
	OracleRPC  = "rpc"

	MailTransporterSMTP = "smtp"
	MailTransporterMock = "mock"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	CORSAllowOrigins               []string
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
	EnableSecureMiddleware         bool
	EnableBodyLimitMiddleware      bool
	BodyLimit                      string
}

type PprofServer struct {
	Enable bool
}

type ManagementServer struct {
	ReadinessTimeout        time.Duration
	LivenessTimeout         time.Duration
	ProbeWriteablePathsAbs  []string
	ProbeWriteableTouchfile string
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	LogCaller          bool
	PrettyPrintConsole bool
}

type Mailer struct {
	DefaultSender string
	Transporter   string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	UseTLS   bool
}

type I18n struct {
	DefaultLanguage language.Tag
	BundleDirAbs    string
}

type AuthServer struct {
	JWTSecret string `json:"-"`
	TokenTTL  time.Duration
}

type Wallet struct {
	Network             string
	EncryptionKey       string `json:"-"`
	ScryptLogN          uint8
	EnvelopeVersion     int
	MnemonicWords       int
	EnableTestEndpoints bool
	TreasuryMnemonic    string `json:"-"`
	TreasuryAddress     string
}

type Signup struct {
	OTPTTL             time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
	SweepInterval      time.Duration
}

type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string `json:"-"`
	UsePathStyle    bool
	PublicBaseURL   string
}

type Storage struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
	S3          S3
}

type Settlement struct {
	Oracle       string
	RPCURL       string
	PollInterval time.Duration
	MaxAttempts  int
	BackoffBase  time.Duration
	BackoffMax   time.Duration
	BatchSize    int
	Lease        time.Duration
}

type Persistence struct {
	Driver string
}

type Server struct {
	Database    Database
	Persistence Persistence
	Echo        EchoServer
	Pprof       PprofServer
	Management  ManagementServer
	Mailer      Mailer
	SMTP        SMTP
	Frontend    FrontendServer
	Logger      LoggerServer
	I18n        I18n
	Auth        AuthServer
	Wallet      Wallet
	Signup      Signup
	Storage     Storage
	Settlement  Settlement
}

type FrontendServer struct {
	BaseURL string
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. secrets to external APIs) and applying them modifies the process
	// global "os.Env" state (it should be applied via t.SetEnv instead).
	if !util.RunningInTest() {
		LoadDotEnv(filepath.Join(util.GetProjectRootDir(), ".env.local"))
	}

	return Server{
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Database: util.GetEnv("PGDATABASE", "reloop"),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", runtime.NumCPU()*2),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: util.GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 60*time.Second),
		},
		Persistence: Persistence{
			Driver: util.GetEnvEnum("SERVER_PERSISTENCE_DRIVER", PersistencePostgres, []string{PersistencePostgres, PersistenceMemory}),
		},
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnvFallback([]string{"SERVER_ECHO_LISTEN_ADDRESS", "PORT"}, ":3000"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnvFallback([]string{"SERVER_ECHO_BASE_URL", "BACKEND_URL"}, "http://localhost:3000"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			CORSAllowOrigins:               util.GetEnvAsStringArr("CORS_ORIGIN", []string{"http://localhost:3001"}),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			EnableSecureMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_SECURE_MIDDLEWARE", true),
			EnableBodyLimitMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_BODY_LIMIT_MIDDLEWARE", true),
			BodyLimit:                      util.GetEnv("SERVER_ECHO_BODY_LIMIT", "10M"),
		},
		Pprof: PprofServer{
			Enable: util.GetEnvAsBool("SERVER_PPROF_ENABLE", false),
		},
		Management: ManagementServer{
			ReadinessTimeout:        util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
			LivenessTimeout:         util.GetEnvAsDuration("SERVER_MANAGEMENT_LIVENESS_TIMEOUT", 9*time.Second),
			ProbeWriteablePathsAbs:  util.GetEnvAsStringArr("SERVER_MANAGEMENT_PROBE_WRITEABLE_PATHS", []string{}),
			ProbeWriteableTouchfile: util.GetEnv("SERVER_MANAGEMENT_PROBE_WRITEABLE_TOUCHFILE", ".healthy"),
		},
		Mailer: Mailer{
			DefaultSender: util.GetEnvFallback([]string{"SERVER_MAILER_DEFAULT_SENDER", "MAIL_FROM"}, "noreply@reloop.app"),
			Transporter:   util.GetEnvEnum("SERVER_MAILER_TRANSPORTER", MailTransporterMock, []string{MailTransporterSMTP, MailTransporterMock}),
		},
		SMTP: SMTP{
			Host:     util.GetEnvFallback([]string{"SERVER_SMTP_HOST", "MAIL_HOST"}, "smtp.gmail.com"),
			Port:     util.GetEnvAsInt("MAIL_PORT", 587),
			Username: util.GetEnvFallback([]string{"SERVER_SMTP_USERNAME", "MAIL_USER"}, ""),
			Password: util.GetEnvFallback([]string{"SERVER_SMTP_PASSWORD", "MAIL_PASSWORD"}, ""),
			UseTLS:   util.GetEnvAsBool("SERVER_SMTP_USE_TLS", false),
		},
		Frontend: FrontendServer{
			BaseURL: util.GetEnv("FRONTEND_URL", "http://localhost:3001"),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			LogCaller:          util.GetEnvAsBool("SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		I18n: I18n{
			DefaultLanguage: util.GetEnvAsLanguageTag("SERVER_I18N_DEFAULT_LANGUAGE", language.English),
			BundleDirAbs:    util.GetEnv("SERVER_I18N_BUNDLE_DIR_ABS", ""),
		},
		Auth: AuthServer{
			JWTSecret: util.GetEnv("JWT_SECRET", ""),
			TokenTTL:  util.GetEnvAsDuration("JWT_EXPIRE", 24*time.Hour),
		},
		Wallet: Wallet{
			Network:             util.GetEnvEnum("CARDANO_NETWORK", "Preprod", []string{"Mainnet", "Preprod", "Preview"}),
			EncryptionKey:       util.GetEnv("ENCRYPTION_KEY", ""),
			ScryptLogN:          util.GetEnvAsUint8("ENCRYPTION_SCRYPT_LOG_N", 15),
			EnvelopeVersion:     util.GetEnvAsInt("ENCRYPTION_ENVELOPE_VERSION", 1),
			MnemonicWords:       util.GetEnvAsInt("WALLET_MNEMONIC_WORDS", 24),
			EnableTestEndpoints: util.GetEnvAsBool("SERVER_WALLET_ENABLE_TEST_ENDPOINTS", false),
			TreasuryMnemonic:    util.GetEnv("TREASURY_MNEMONIC", ""),
			TreasuryAddress:     util.GetEnv("TREASURY_CONTRACT_ADDRESS", ""),
		},
		Signup: Signup{
			OTPTTL:             util.GetEnvAsDuration("SIGNUP_OTP_TTL", 10*time.Minute),
			RateLimitPerMinute: util.GetEnvAsInt("SIGNUP_RATE_LIMIT_PER_MINUTE", 10),
			RateLimitBurst:     util.GetEnvAsInt("SIGNUP_RATE_LIMIT_BURST", 5),
			SweepInterval:      util.GetEnvAsDuration("SIGNUP_SWEEP_INTERVAL", time.Minute),
		},
		Storage: Storage{
			Driver:      util.GetEnvEnum("STORAGE_DRIVER", StorageLocal, []string{StorageLocal, StorageS3}),
			UploadPath:  util.GetEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: util.GetEnvAsInt64("MAX_FILE_SIZE", 5242880),
			S3: S3{
				Bucket:          util.GetEnv("S3_BUCKET", ""),
				Region:          util.GetEnv("S3_REGION", "us-east-1"),
				Endpoint:        util.GetEnv("S3_ENDPOINT", ""),
				AccessKeyID:     util.GetEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: util.GetEnv("S3_SECRET_ACCESS_KEY", ""),
				UsePathStyle:    util.GetEnvAsBool("S3_USE_PATH_STYLE", true),
				PublicBaseURL:   util.GetEnv("S3_PUBLIC_BASE_URL", ""),
			},
		},
		Settlement: Settlement{
			Oracle:       util.GetEnvEnum("SETTLEMENT_ORACLE", OracleMock, []string{OracleMock, OracleRPC}),
			RPCURL:       util.GetEnv("SETTLEMENT_RPC_URL", ""),
			PollInterval: util.GetEnvAsDuration("SETTLEMENT_POLL_INTERVAL", 5*time.Second),
			MaxAttempts:  util.GetEnvAsInt("SETTLEMENT_MAX_ATTEMPTS", 8),
			BackoffBase:  util.GetEnvAsDuration("SETTLEMENT_BACKOFF_BASE", 5*time.Second),
			BackoffMax:   util.GetEnvAsDuration("SETTLEMENT_BACKOFF_MAX", 30*time.Minute),
			BatchSize:    util.GetEnvAsInt("SETTLEMENT_BATCH_SIZE", 20),
			Lease:        util.GetEnvAsDuration("SETTLEMENT_LEASE", 2*time.Minute),
		},
	}
}
