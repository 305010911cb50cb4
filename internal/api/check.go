// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"

	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

const skipped = "skipped"

// Checker is the leak lookup behind the API. *hibp.Client implements it.
type Checker interface {
	Check(ctx context.Context, password string, timeout time.Duration) hibp.Result
	CheckHash(ctx context.Context, hash string, timeout time.Duration) hibp.Result
}

type checkApi struct {
	checker Checker
	timeout time.Duration
}

func toLeakResponse(r hibp.Result) leakResponse {
	return leakResponse{Status: r.Status.String(), Count: r.Count}
}

func (q *checkApi) checkPassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password := *req.Password
	resp := passwordResponse{
		Report: strength.Analyze(password),
		Leak:   leakResponse{Status: skipped},
	}

	if password != "" {
		resp.ZxcvbnScore = zxcvbn.PasswordStrength(password, nil).Score
	}

	if !req.SkipLeakCheck {
		res := q.checker.Check(c.Request.Context(), password, q.timeout)
		if res.Failed() {
			log.Warn().Err(res.Err).Str("request_id", c.GetString(requestIDKey)).Msg("leak lookup failed")
		}
		resp.Leak = toLeakResponse(res)
	}

	c.JSON(http.StatusOK, resp)
}

func (q *checkApi) checkHash(c *gin.Context) {
	var req hashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, _, err := hibp.SplitHash(req.Hash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := q.checker.CheckHash(c.Request.Context(), req.Hash, q.timeout)
	if res.Failed() && !errors.Is(res.Err, hibp.ErrInvalidHash) {
		log.Warn().Err(res.Err).Str("request_id", c.GetString(requestIDKey)).Msg("leak lookup failed")
	}

	c.JSON(http.StatusOK, hashResponse{Leak: toLeakResponse(res)})
}

func RegisterCheckApi(group *gin.RouterGroup, checker Checker, timeout time.Duration) {
	q := &checkApi{checker: checker, timeout: timeout}

	group.POST("/password", q.checkPassword)
	group.POST("/hash", q.checkHash)
}
