// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"io"

	"github.com/charmbracelet/log"
)

// discardLogger is used when options carry no logger.
var discardLogger = log.New(io.Discard)
