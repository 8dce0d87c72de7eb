// Package config builds the service configuration from the environment.
// The struct is constructed once in main and passed by reference — there
// is deliberately no package-level state to read from elsewhere.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the print service needs at startup. The printer
// IPs are deployment facts (the shop's LAN), so each has a default that
// matches the installed hardware and an env override for moves/repairs.
type Config struct {
	// HTTPPort is the listening port for the POS/kiosk-facing API.
	HTTPPort string

	// The four printer addresses. Kitchen and milkshake are ticket
	// printers; the two receipt printers are split by request source.
	KitchenIP      string
	MilkshakeIP    string
	ReceiptPOSIP   string
	ReceiptKioskIP string

	// SendTimeout bounds connect+write of one print job.
	SendTimeout time.Duration

	// JobLogPath is the SQLite file for the per-job audit log.
	// Empty disables the job log.
	JobLogPath string

	// RedisAddr enables the idempotency guard when set.
	RedisAddr string
}

// Load reads the environment, applying documented defaults.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("PORT", "4000"),
		KitchenIP:      getEnv("PRINTER_IP_KITCHEN", "192.168.50.3"),
		MilkshakeIP:    getEnv("PRINTER_IP_MILKSHAKE", "192.168.50.19"),
		ReceiptPOSIP:   getEnv("PRINTER_IP_RECEIPT_POS", "192.168.50.201"),
		ReceiptKioskIP: getEnv("PRINTER_IP_RECEIPT_KIOSK", "192.168.50.202"),
		SendTimeout:    getEnvMillis("PRINTER_SEND_TIMEOUT_MS", 3000),
		JobLogPath:     getEnv("PRINT_JOB_DB", "data/print-jobs.db"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}
