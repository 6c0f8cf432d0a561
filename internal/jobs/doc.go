// SPDX-License-Identifier: MPL-2.0

// Package jobs holds the zos-jobs command definitions and the handler that
// turns a validated zos-jobs invocation into the plan of z/OSMF REST
// requests it would issue. Plans are descriptions only; nothing here
// opens a connection.
package jobs
