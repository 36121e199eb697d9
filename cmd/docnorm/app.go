package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/docnorm"
	"github.com/tsawler/docnorm/internal/config"
	"github.com/tsawler/docnorm/internal/logging"
	"github.com/tsawler/docnorm/ocr"
)

// app holds the global flags shared by every command.
type app struct {
	configPath string
	logLevel   string
}

// pipeline loads the configuration and builds the extraction pipeline.
// Logs go to stderr so stdout carries only JSON.
func (a *app) pipeline() (*docnorm.Pipeline, *slog.Logger, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	capability := ocr.Unavailable("disabled by configuration")
	if cfg.OCR {
		capability = ocr.Detect(cfg.OCRLanguage)
	}
	if !capability.Available() {
		logger.Debug("ocr unavailable", "reason", capability.Reason())
	}

	return docnorm.New(docnorm.Config{
		OCR:          capability,
		MaxFileSize:  cfg.MaxFileSize,
		TextEncoding: cfg.TextEncoding,
		Logger:       logger,
	}), logger, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
