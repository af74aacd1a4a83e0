// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/geomap/geocache"
	"go.uber.org/zap"
)

type GeocodeRequest struct {
	// Query is validated by the geocoder; any JSON type may show up here.
	Query any `json:"query"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

func (s *Server) indexView(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", gin.H{"Version": s.options.Version})
}

func (s *Server) ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

func (s *Server) geocode(ctx *gin.Context) {
	var req GeocodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.logger.Error("decoding geocode request", zap.Error(err), requestIDField(ctx))
		s.writeError(ctx, err)

		return
	}

	result, err := s.geocoder.Lookup(ctx.Request.Context(), req.Query)
	if err != nil {
		s.writeError(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// writeError answers with the error contract. Only the fixed message of a
// classified error is exposed; everything else is a generic 500.
func (s *Server) writeError(ctx *gin.Context, err error) {
	geoErr := geocache.AsGeocodingError(err)
	if geoErr.Type == geocache.ErrorTypeUnexpected {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: geocache.MsgUnexpected})

		return
	}

	ctx.JSON(geoErr.HTTPStatus(), ErrorResponse{Error: geoErr.Message})
}
