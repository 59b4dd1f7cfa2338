// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !debug

package aadd

import (
	"io"
	"log/slog"
)

const _DEBUG bool = false

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
