package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOptions 日誌設定
type LoggerOptions struct {
	Level   string // debug / info / warn / error / fatal
	Mode    string // concise 時只保留請求與啟停訊息
	File    string // 空字串時不寫檔
	Console bool
	Service string
}

var (
	// Logger 全局日誌實例，InitLogger 之前為 no-op
	Logger = zap.NewNop()

	conciseMode bool

	// concise 模式下仍輸出的訊息
	conciseMessages = map[string]bool{"請求完成": true, "啟動應用": true, "Shutting down server...": true, "Server exited": true}

	// 不寫入日誌的敏感欄位
	sensitiveKeys = map[string]bool{
		"password":      true,
		"password_hash": true,
		"session_id":    true,
		"cookie":        true,
	}

	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m",
		zapcore.InfoLevel:  "\033[32m",
		zapcore.WarnLevel:  "\033[33m",
		zapcore.ErrorLevel: "\033[31m",
		zapcore.FatalLevel: "\033[35m",
	}
	levelLabels = map[zapcore.Level]string{
		zapcore.DebugLevel: "DBG",
		zapcore.InfoLevel:  "INF",
		zapcore.WarnLevel:  "WRN",
		zapcore.ErrorLevel: "ERR",
		zapcore.FatalLevel: "FAT",
	}
	resetColor = "\033[0m"
)

func encoderConfig(colored bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if colored {
		cfg.EncodeLevel = coloredLevelEncoder
		cfg.EncodeTime = clockTimeEncoder
	}
	return cfg
}

// clockTimeEncoder 主控台只顯示到毫秒的時間
func clockTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// coloredLevelEncoder 三字元等級加上顏色
func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	label, ok := levelLabels[l]
	if !ok {
		label = l.CapitalString()
	}
	enc.AppendString(levelColors[l] + label + resetColor)
}

// ParseLevel 無法辨識時回到 info
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// InitLogger 初始化日誌系統
func InitLogger(opts LoggerOptions) error {
	level := ParseLevel(opts.Level)
	conciseMode = opts.Mode == "concise"

	var cores []zapcore.Core
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig(false)),
			zapcore.AddSync(logFile),
			level,
		))
	}
	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(true)),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}
	if len(cores) == 0 {
		Logger = zap.NewNop()
		return nil
	}

	service := opts.Service
	if service == "" {
		service = "recipe-browser"
	}
	Logger = zap.New(zapcore.NewTee(cores...),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", service)),
	)
	zap.ReplaceGlobals(Logger)
	return nil
}

// LogInfo 記錄信息日誌
func LogInfo(msg string, fields ...zap.Field) {
	if conciseMode && !conciseMessages[msg] {
		return
	}
	Logger.Info(msg, filterSensitive(fields)...)
}

// LogError 記錄錯誤日誌
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, filterSensitive(fields)...)
}

// LogWarn 記錄警告日誌
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, filterSensitive(fields)...)
}

// LogDebug 記錄調試日誌
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, filterSensitive(fields)...)
}

// LogFatal 記錄致命錯誤日誌
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, filterSensitive(fields)...)
}

// Sync 同步日誌緩衝
func Sync() {
	_ = Logger.Sync()
}

func filterSensitive(fields []zap.Field) []zap.Field {
	filtered := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if sensitiveKeys[strings.ToLower(field.Key)] {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}

// LogCacheHit 記錄快取命中
func LogCacheHit(namespace, key string) {
	LogDebug("快取命中", zap.String("namespace", namespace), zap.String("key", key))
}

// LogCacheMiss 記錄快取未命中
func LogCacheMiss(namespace, key string) {
	LogDebug("快取未命中", zap.String("namespace", namespace), zap.String("key", key))
}

// LogQuery 記錄資料庫查詢，失敗時以 error 等級輸出
func LogQuery(name string, duration time.Duration, err error, requestID string) {
	fields := []zap.Field{
		zap.String("query", name),
		zap.Duration("duration", duration),
	}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if err != nil {
		LogError("資料庫查詢失敗", append(fields, zap.Error(err))...)
		return
	}
	LogDebug("資料庫查詢完成", fields...)
}
