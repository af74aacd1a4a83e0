// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcodagnone/geomap/geocache"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	maxRequestIDLength = 128
)

// requestID propagates the caller's X-Request-ID, or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		ctx.Set(requestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func requestIDField(ctx *gin.Context) zap.Field {
	return zap.String("request_id", ctx.GetString(requestIDKey))
}

// accessLog logs every request with timing. It never reads the body.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		logger.Info("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
			requestIDField(ctx),
		)
	}
}

// recovery turns a panic into the generic 500 answer.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		logger.Error("panic while serving request",
			zap.Any("panic", recovered),
			zap.String("path", ctx.Request.URL.Path),
			requestIDField(ctx),
		)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": geocache.MsgUnexpected})
	})
}
