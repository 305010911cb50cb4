// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import "time"

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// check
	password string
	// check
	asJSON bool
	// check, batch
	noHibp bool
	// check, batch, serve
	timeout time.Duration
	// batch
	inputFile string
	// batch
	threads int
	// batch
	rps int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)
