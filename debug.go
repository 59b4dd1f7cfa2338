// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package aadd

import (
	"log/slog"
	"os"
)

const _DEBUG bool = true

// defaultLogger returns the logger used when no Logger option is given. With
// the debug build tag we log everything on the standard error.
func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
