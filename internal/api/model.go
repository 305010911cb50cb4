package api

import "github.com/alvinbaena/pwdcheck/pkg/strength"

type passwordRequest struct {
	// Pointer so an empty password is accepted and graded as Empty.
	Password      *string `json:"password" binding:"required"`
	SkipLeakCheck bool    `json:"skip_leak_check"`
}

type hashRequest struct {
	Hash string `json:"hash" binding:"required"`
}

type leakResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type passwordResponse struct {
	Report      strength.Report `json:"report"`
	Leak        leakResponse    `json:"leak"`
	ZxcvbnScore int             `json:"zxcvbn_score"`
}

type hashResponse struct {
	Leak leakResponse `json:"leak"`
}
