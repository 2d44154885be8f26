package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strings"
    "time"

    "github.com/joho/godotenv"
)

// Payment modes.  The key id issued by the gateway carries the mode in its
// prefix, so the two must agree.
const (
    PaymentModeTest = "test"
    PaymentModeLive = "live"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
    StorageMemory = "memory"
    StorageMySQL  = "mysql"
    StorageSQLite = "sqlite"
)

// Notification transports selectable through NOTIFY_TRANSPORT.
const (
    TransportMemory = "memory"
    TransportAMQP   = "amqp"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env      string // application environment (development, production, ...)
    Port     string // HTTP port to listen on
    LogLevel string // zap level name

    StorageBackend string // memory, mysql or sqlite
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    SQLitePath     string // sqlite file path

    JWTSecret string // secret used to verify operator tokens

    RazorpayKeyID     string        // public key id returned by /payment/key
    RazorpayKeySecret string        // gateway auth and signature verification secret
    RazorpayBaseURL   string        // gateway API base
    PaymentMode       string        // test or live
    GatewayTimeout    time.Duration // bound on a single order creation call

    NotifyTransport string        // memory or amqp
    NotifyTimeout   time.Duration // bound on a single notification delivery
    OutboxSize      int           // in-process outbox capacity
    RabbitURL       string        // AMQP broker URL

    SMTPHost string
    SMTPPort int
    SMTPUser string
    SMTPPass string
    SMTPFrom string

    RevenueReportSpec string // cron spec, empty disables the report
}

// Load reads configuration values from the environment (after merging an
// optional .env file) and returns a Config.  Required variables are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.  Callers should run Validate on the result.
func Load() Config {
    // A missing .env file is normal outside local development.
    _ = godotenv.Load()

    cfg := Config{
        Env:      envStr("APP_ENV", "development"),
        Port:     envStr("APP_PORT", "8080"),
        LogLevel: envStr("LOG_LEVEL", "info"),

        StorageBackend: strings.ToLower(envStr("STORAGE_BACKEND", StorageMemory)),
        SQLitePath:     envStr("SQLITE_PATH", "eventflow.db"),

        JWTSecret: must("JWT_SECRET"),

        RazorpayKeyID:     must("RAZORPAY_KEY_ID"),
        RazorpayKeySecret: must("RAZORPAY_KEY_SECRET"),
        RazorpayBaseURL:   envStr("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
        PaymentMode:       strings.ToLower(envStr("PAYMENT_MODE", PaymentModeTest)),
        GatewayTimeout:    envDur("PAYMENT_GATEWAY_TIMEOUT", 10*time.Second),

        NotifyTransport: strings.ToLower(envStr("NOTIFY_TRANSPORT", TransportMemory)),
        NotifyTimeout:   envDur("NOTIFY_TIMEOUT", 15*time.Second),
        OutboxSize:      envInt("OUTBOX_SIZE", 256),
        RabbitURL:       os.Getenv("RABBITMQ_URL"),

        SMTPHost: os.Getenv("SMTP_HOST"),
        SMTPPort: envInt("SMTP_PORT", 587),
        SMTPUser: os.Getenv("SMTP_USER"),
        SMTPPass: os.Getenv("SMTP_PASS"),
        SMTPFrom: envStr("SMTP_FROM", "bookings@eventflow.local"),

        RevenueReportSpec: envStr("REVENUE_REPORT_SPEC", "@hourly"),
    }
    // An explicitly empty spec turns the report off.
    if v, ok := os.LookupEnv("REVENUE_REPORT_SPEC"); ok && v == "" {
        cfg.RevenueReportSpec = ""
    }
    if cfg.StorageBackend == StorageMySQL {
        cfg.DBUser = must("DB_USER")
        cfg.DBPass = os.Getenv("DB_PASS")
        cfg.DBHost = must("DB_HOST")
        cfg.DBPort = must("DB_PORT")
        cfg.DBName = must("DB_NAME")
    }
    return cfg
}

// Validate checks cross-field invariants that a plain lookup cannot.
func (c Config) Validate() error {
    var errs []error
    switch c.PaymentMode {
    case PaymentModeTest, PaymentModeLive:
        prefix := "rzp_" + c.PaymentMode + "_"
        if !strings.HasPrefix(c.RazorpayKeyID, prefix) {
            errs = append(errs, fmt.Errorf("RAZORPAY_KEY_ID must start with %q in %s mode", prefix, c.PaymentMode))
        }
    default:
        errs = append(errs, fmt.Errorf("PAYMENT_MODE must be test or live, got %q", c.PaymentMode))
    }
    if c.RazorpayKeySecret == "" {
        errs = append(errs, errors.New("RAZORPAY_KEY_SECRET is required"))
    }
    if c.Env == "production" && c.PaymentMode != PaymentModeLive {
        errs = append(errs, errors.New("production requires PAYMENT_MODE=live"))
    }
    switch c.StorageBackend {
    case StorageMemory, StorageMySQL, StorageSQLite:
    default:
        errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
    }
    switch c.NotifyTransport {
    case TransportMemory:
    case TransportAMQP:
        if c.RabbitURL == "" {
            errs = append(errs, errors.New("RABBITMQ_URL is required when NOTIFY_TRANSPORT=amqp"))
        }
    default:
        errs = append(errs, fmt.Errorf("unknown NOTIFY_TRANSPORT %q", c.NotifyTransport))
    }
    if c.GatewayTimeout <= 0 {
        errs = append(errs, errors.New("PAYMENT_GATEWAY_TIMEOUT must be positive"))
    }
    return errors.Join(errs...)
}

// SMTPEnabled reports whether enough SMTP settings exist to send mail.
func (c Config) SMTPEnabled() bool {
    return c.SMTPHost != "" && c.SMTPFrom != ""
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
